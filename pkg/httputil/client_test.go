package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvaldez/steelbrain/pkg/logger"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Rebar 12mm","stock":420}`))
	}))
	defer server.Close()

	client := New(logger.NewNop()).DisableRetry()

	var payload struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	err := client.GetJSON(context.Background(), server.URL, &payload)
	require.NoError(t, err)
	assert.Equal(t, "Rebar 12mm", payload.Name)
	assert.Equal(t, 420, payload.Stock)
}

func TestGetJSON_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(logger.NewNop()).DisableRetry()

	var payload map[string]interface{}
	err := client.GetJSON(context.Background(), server.URL, &payload)
	assert.Error(t, err)
}

func TestDo_RetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`ok`))
	}))
	defer server.Close()

	client := New(logger.NewNop()).WithRetry(3, time.Millisecond)

	body, err := client.GetBody(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(logger.NewNop()).WithRetry(5, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, server.URL)
	assert.Error(t, err)
}

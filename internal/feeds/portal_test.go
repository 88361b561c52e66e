package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/httputil"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

func TestDetectSector(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"rehabilitación del puente sobre el río", "Infrastructure"},
		{"ampliación de mina de cobre", "Mining"},
		{"mantenimiento de refinería estatal", "Oil"},
		{"construcción de hospital regional", "Construction"},
		{"central hidroeléctrica fase 2", "Energy"},
		{"suministro de mobiliario de oficina", "Infrastructure"}, // default
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, detectSector(tt.text), tt.text)
	}
}

func TestDetectProducts(t *testing.T) {
	products := detectProducts("suministro de varilla y viga para obra")
	assert.Contains(t, products, "Varilla Corrugada 12mm")
	assert.Contains(t, products, "Vigas IPE 200mm")
	assert.LessOrEqual(t, len(products), 4)

	// no recognizable product falls back to the generic list
	assert.Equal(t, genericProducts, detectProducts("obra civil general"))
}

func TestEstimateVolume(t *testing.T) {
	tests := []struct {
		amount float64
		want   float64
	}{
		{6200000, 744}, // 12% / $1000
		{100000, 50},   // below floor
		{100000000, 2000},
		{0, 200}, // default
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, estimateVolume(tt.amount))
	}
}

func TestDetermineUrgency(t *testing.T) {
	client := NewPortalClient(nil, nil, config.PortalConfig{}, logger.NewNop())
	client.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		record tenderRecord
		text   string
		want   contracts.Urgency
	}{
		{"urgent keyword", tenderRecord{}, "adquisición urgente de varilla", contracts.UrgencyHigh},
		{"deadline under 15 days", tenderRecord{DeadlineAt: "2026-02-10"}, "", contracts.UrgencyHigh},
		{"deadline under 30 days", tenderRecord{DeadlineAt: "2026-02-20"}, "", contracts.UrgencyMedium},
		{"far deadline", tenderRecord{DeadlineAt: "2026-06-01"}, "", contracts.UrgencyMedium},
		{"no hints", tenderRecord{}, "suministro de acero", contracts.UrgencyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.determineUrgency(tt.record, tt.text))
		})
	}
}

func TestOpportunities_FetchAndClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/procesos", r.URL.Path)
		assert.Equal(t, "60", r.URL.Query().Get("dias"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{
			"codigo": "LICO-2026-001",
			"titulo": "Rehabilitación puente Guayas",
			"descripcion": "Suministro urgente de viga y plancha de acero",
			"entidad": "MTOP",
			"monto_total": 6200000,
			"fecha_publicacion": "2026-01-15"
		}]}`))
	}))
	defer server.Close()

	client := NewPortalClient(
		httputil.New(logger.NewNop()).DisableRetry(),
		nil,
		config.PortalConfig{BaseURL: server.URL, WindowDays: 60},
		logger.NewNop(),
	)

	feed := client.Opportunities(context.Background(), 60)
	require.True(t, feed.Available)
	require.Len(t, feed.Data, 1)

	opp := feed.Data[0]
	assert.Equal(t, "LICO-2026-001", opp.Code)
	assert.Equal(t, "Infrastructure", opp.Sector)
	assert.Equal(t, contracts.UrgencyHigh, opp.Urgency)
	assert.Equal(t, 744.0, opp.EstimatedVolume)
	assert.Contains(t, opp.DemandedGoods, "Vigas IPE 200mm")
	assert.Equal(t, "compraspublicas", opp.Source)
	assert.Equal(t, 2026, opp.PublishedAt.Year())
}

func TestOpportunities_FetchFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewPortalClient(
		httputil.New(logger.NewNop()).DisableRetry(),
		nil,
		config.PortalConfig{BaseURL: server.URL, WindowDays: 60},
		logger.NewNop(),
	)

	feed := client.Opportunities(context.Background(), 60)
	assert.False(t, feed.Available)
	assert.NotEmpty(t, feed.Reason)
}

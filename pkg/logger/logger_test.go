package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nvaldez/steelbrain/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"garbage", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestNew_FormatSelection(t *testing.T) {
	for _, format := range []string{"json", "console", "pretty"} {
		cfg := &config.Config{Env: "development", LogLevel: "info", LogFormat: format}
		log := New(cfg)
		assert.NotNil(t, log)
	}
}

func TestWithFields_ReturnsNewLogger(t *testing.T) {
	log := NewNop()
	derived := log.WithFields(map[string]interface{}{"phase": 1, "run_id": "x"})

	assert.NotNil(t, derived)
	assert.NotSame(t, log, derived)
}

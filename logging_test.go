package dispatch

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerbosityLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      slog.Level
	}{
		{"default warn level", 0, slog.LevelWarn},
		{"negative clamps to warn", -1, slog.LevelWarn},
		{"info level", 1, slog.LevelInfo},
		{"debug level", 2, slog.LevelDebug},
		{"high verbosity stays debug", 5, slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityLevel(tt.verbosity))
		})
	}
}

func TestNewLogger_PlainOutputToBuffer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("dispatched", "method", "rss")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "dispatched")
	assert.Contains(t, out, "method=rss")
	assert.NotContains(t, out, "\x1b[", "no colour codes when not writing to a terminal")
}

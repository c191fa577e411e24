package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("applied", "size", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "applied", record["msg"])
	assert.Equal(t, float64(2), record["size"])
}

func TestNewLoggerTextLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "warn"}, &buf)

	logger.Info("quiet")
	assert.Zero(t, buf.Len())

	logger.Warn("loud")
	assert.Contains(t, buf.String(), "msg=loud")
}

func TestNop(t *testing.T) {
	assert.False(t, Nop().Enabled(context.Background(), slog.LevelError))
}

package config

import (
	"log/slog"
	"testing"

	"gotest.tools/v3/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.Log.Level, "info")
	assert.Equal(t, cfg.Log.SeqURL, "")

	level, err := cfg.Log.SlogLevel()
	assert.NilError(t, err)
	assert.Equal(t, level, slog.LevelInfo)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		got, err := LogConfig{Level: tt.in}.SlogLevel()
		assert.NilError(t, err, "level %q", tt.in)
		assert.Equal(t, got, tt.want, "level %q", tt.in)
	}

	_, err := LogConfig{Level: "loud"}.SlogLevel()
	assert.ErrorContains(t, err, "unknown log level")
}

package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogConfig controls the console and Seq log sinks
type LogConfig struct {
	Level     string `help:"Log level (debug, info, warn, error)." default:"info" env:"METAFRAME_LOG_LEVEL"`
	SeqURL    string `help:"Seq ingestion URL; empty disables Seq." name:"seq-url" env:"METAFRAME_SEQ_URL"`
	AddSource bool   `help:"Include source locations in log records." name:"add-source" env:"METAFRAME_LOG_SOURCE"`
}

// Config is the process-wide configuration, bound to flags and env vars by the CLI
type Config struct {
	Log LogConfig `embed:"" prefix:"log-"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SlogLevel parses Level
func (c LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Level)
	}
}

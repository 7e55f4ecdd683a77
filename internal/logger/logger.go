// Package logger builds the zerolog logger shared by the service.
package logger

import (
	"io"
	"time"

	"github.com/Gobd/querycheck/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the configured level. The console
// format is meant for local development; everything else logs JSON.
func New(w io.Writer, cfg config.LoggingConfig, env string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "bmi").
		Str("env", env).
		Logger()
}

// Package logging sets up the process-wide slog logger.
// Standard output carries the JSON report, so logs go to stderr or a rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"companyscraper/config"
)

// Setup installs the default slog logger and returns a cleanup function for shutdown
func Setup(cfg config.LogConfig) (func() error, error) {
	var writer io.Writer = os.Stderr
	cleanup := func() error { return nil }

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
			LocalTime:  true,
		}
		writer = lj
		cleanup = lj.Close
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}))
	slog.SetDefault(logger)

	return cleanup, nil
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

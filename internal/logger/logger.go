package logger

import (
	"log/slog"
	"os"

	"retroquest/internal/config"
)

// Setup builds the process logger from config and installs it as the slog
// default. Logs go to stderr so command output stays clean.
func Setup(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// Package observability provides structured logging and the worker's
// health endpoint.
package observability

import (
	"log/slog"
	"os"
	"strings"
)

// LoggerOptions configures the logger factory.
type LoggerOptions struct {
	// Level is one of debug, info, warn, error.
	Level string
	// JSON switches to JSON output, for production.
	JSON bool
	// Service is attached to every record.
	Service string
}

// NewLogger creates a slog.Logger writing to stderr.
func NewLogger(opts LoggerOptions) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Service != "" {
		logger = logger.With("service", opts.Service)
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

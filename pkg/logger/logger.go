// Package logger configures log/slog for the listener: JSON in production,
// text for local runs, correlation IDs on every record logged with a context.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level   string    // debug, info, warn, error
	Console bool      // text output for local runs (LOG_FORMAT=console)
	Service string    // added as "service" to every record when set
	Output  io.Writer // os.Stdout when nil
}

func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	ho := &slog.HandlerOptions{Level: parseLevel(opts.Level), AddSource: true}
	var h slog.Handler = slog.NewJSONHandler(out, ho)
	if opts.Console {
		h = slog.NewTextHandler(out, ho)
	}

	l := slog.New(NewCorrelationHandler(h))
	if opts.Service != "" {
		l = l.With("service", opts.Service)
	}
	return l
}

// Setup installs New(opts) as the slog default.
func Setup(opts Options) {
	slog.SetDefault(New(opts))
}

// parseLevel falls back to info for unknown names.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

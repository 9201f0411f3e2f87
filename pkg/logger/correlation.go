package logger

import (
	"context"
	"log/slog"

	"PaypalIPNListener/pkg/correlation"
)

// correlationHandler injects correlation_id from the context into every record.
type correlationHandler struct {
	inner slog.Handler
}

// NewCorrelationHandler wraps inner so that records logged with a context
// carrying a correlation ID get a correlation_id attribute.
func NewCorrelationHandler(inner slog.Handler) slog.Handler {
	return &correlationHandler{inner: inner}
}

func (h *correlationHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if corrID := correlation.FromContext(ctx); corrID != "" {
			r.AddAttrs(slog.String("correlation_id", corrID))
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *correlationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *correlationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &correlationHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *correlationHandler) WithGroup(name string) slog.Handler {
	return &correlationHandler{inner: h.inner.WithGroup(name)}
}

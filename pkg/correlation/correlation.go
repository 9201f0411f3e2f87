// Package correlation carries one request ID from the HTTP edge through
// verification, dispatch and the forwarded broker record.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is used on both HTTP requests and Kafka records.
const (
	HeaderName      = "X-Correlation-ID"
	KafkaHeaderName = HeaderName
)

// maxIDLen caps inbound IDs; longer values are replaced.
const maxIDLen = 128

type ctxKey struct{}

func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Ensure returns ctx and its ID, attaching a new ID first if ctx has none.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewID()
	return WithID(ctx, id), id
}

// Accept returns the inbound header value when it is a usable ID and a new
// one otherwise. Callers are untrusted, so IDs with control characters,
// spaces or excessive length are not propagated into logs.
func Accept(header string) string {
	if header == "" || len(header) > maxIDLen {
		return NewID()
	}
	for i := 0; i < len(header); i++ {
		if header[i] <= ' ' || header[i] > '~' {
			return NewID()
		}
	}
	return header
}

func NewID() string {
	return uuid.NewString()
}

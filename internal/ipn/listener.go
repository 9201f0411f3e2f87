package ipn

import (
	"context"
	"log/slog"

	"PaypalIPNListener/pkg/metrics"
)

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithAuditSink enables audit lines for received and validated messages.
func WithAuditSink(sink AuditSink) ListenerOption {
	return func(l *Listener) {
		if sink != nil {
			l.audit = sink
		}
	}
}

// Listener ties decoding, verification and dispatch together.
type Listener struct {
	verifier Verifier
	registry *Registry
	audit    AuditSink
}

// NewListener creates a listener that audits nothing unless WithAuditSink is given.
func NewListener(verifier Verifier, registry *Registry, opts ...ListenerOption) *Listener {
	l := &Listener{
		verifier: verifier,
		registry: registry,
		audit:    NopAuditSink{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// HandleMessage decodes raw, confirms it with the processor and, only when
// confirmed, dispatches it. The return value is the verification verdict.
func (l *Listener) HandleMessage(ctx context.Context, raw []byte) bool {
	msg := Decode(raw)
	l.audit.Append("Received Message: " + msg.Raw())

	txnType, _ := msg.TxnType()
	txnID, _ := msg.Get("txn_id")

	if !l.verifier.Verify(ctx, msg) {
		l.audit.Append("Validating failed for message: " + msg.Raw())
		metrics.IPNMessagesTotal.WithLabelValues("rejected").Inc()
		slog.InfoContext(ctx, "IPN message rejected",
			"txn_type", txnType,
			"txn_id", txnID,
			"fields", msg.Len())
		return false
	}

	l.audit.Append("Validating success for message: " + msg.Raw())
	metrics.IPNMessagesTotal.WithLabelValues("verified").Inc()
	slog.InfoContext(ctx, "IPN message verified",
		"txn_type", txnType,
		"txn_id", txnID)

	l.registry.Process(ctx, msg)
	return true
}

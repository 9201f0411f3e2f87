// Package forward publishes verified notifications to a message broker so
// downstream services can act on them.
package forward

import (
	"context"
	"log/slog"

	"PaypalIPNListener/internal/ipn"
	"PaypalIPNListener/internal/messaging"
)

const (
	// Source is the envelope source of forwarded notifications.
	Source = "paypal-ipn"
	// EventTypePrefix prefixes the txn_type in envelope types, e.g. "ipn.web_accept".
	EventTypePrefix = "ipn."
)

// keyFields are tried in order to pick a partition key.
var keyFields = []string{"txn_id", "parent_txn_id", "subscr_id", "recurring_payment_id", "ipn_track_id"}

// Handler is an ipn.Handler that publishes the message as an envelope.
type Handler struct {
	publisher messaging.Publisher
}

var _ ipn.Handler = (*Handler)(nil)

func NewHandler(publisher messaging.Publisher) *Handler {
	return &Handler{publisher: publisher}
}

// Handle publishes msg. A failed publish stops the chain so later handlers
// do not act on a notification downstream services never saw.
func (h *Handler) Handle(ctx context.Context, msg *ipn.Message) ipn.Result {
	txnType, _ := msg.TxnType()

	envelope, err := messaging.NewEnvelope(ctx, Source, partitionKey(msg), EventTypePrefix+txnType, msg)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build IPN envelope",
			"txn_type", txnType,
			slog.Any("error", err))
		return ipn.Stop
	}

	if err := h.publisher.Publish(ctx, envelope); err != nil {
		slog.ErrorContext(ctx, "Failed to forward IPN message",
			"txn_type", txnType,
			"key", envelope.Key,
			slog.Any("error", err))
		return ipn.Stop
	}

	return ipn.Continue
}

// partitionKey returns the first non-empty identifying field, or an empty
// key which lets the balancer spread the message.
func partitionKey(msg *ipn.Message) string {
	for _, name := range keyFields {
		if v, ok := msg.Get(name); ok && v != "" {
			return v
		}
	}
	return ""
}

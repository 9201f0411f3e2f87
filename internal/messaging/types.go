package messaging

import (
	"context"
	"encoding/json"
	"time"

	"PaypalIPNListener/pkg/correlation"

	"github.com/google/uuid"
)

//go:generate mockgen -source types.go -destination mock_publisher.go -package messaging

// Envelope is the broker record for one forwarded notification.
// Key groups records of one transaction; Type routes them ("ipn.<txn_type>").
type Envelope struct {
	EventID       string          `json:"event_id"`
	Source        string          `json:"source"`
	Key           string          `json:"key,omitempty"`
	Type          string          `json:"type"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
	Timestamp     time.Time       `json:"timestamp"`
}

// NewEnvelope marshals payload and stamps the envelope with a fresh event ID
// and the correlation ID carried by ctx, if any.
func NewEnvelope(ctx context.Context, source, key, msgType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		EventID:       uuid.NewString(),
		Source:        source,
		Key:           key,
		Type:          msgType,
		CorrelationID: correlation.FromContext(ctx),
		Payload:       data,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Publisher delivers envelopes to the broker.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

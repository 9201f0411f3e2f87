package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"PaypalIPNListener/internal/messaging"
	"PaypalIPNListener/pkg/correlation"
	"PaypalIPNListener/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// eventTypeHeader lets consumers filter by envelope type without decoding the value.
const eventTypeHeader = "X-Event-Type"

var _ messaging.Publisher = (*Publisher)(nil)

// Publisher implements messaging.Publisher using Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a new Kafka publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &Publisher{writer: writer}
}

// Publish sends an envelope to Kafka, keyed by the envelope key so all
// notifications of one transaction land on the same partition.
func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{Value: value}
	// A nil key lets the Hash balancer fall back to round-robin.
	if env.Key != "" {
		msg.Key = []byte(env.Key)
	}

	msg.Headers = append(msg.Headers, kafka.Header{Key: eventTypeHeader, Value: []byte(env.Type)})
	corrID := env.CorrelationID
	if corrID == "" {
		corrID = correlation.FromContext(ctx)
	}
	if corrID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   correlation.KafkaHeaderName,
			Value: []byte(corrID),
		})
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, msg)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.KafkaPublishDuration.WithLabelValues(p.writer.Topic, status).Observe(time.Since(start).Seconds())
	metrics.KafkaMessagesPublished.WithLabelValues(p.writer.Topic, status).Inc()

	if err != nil {
		slog.ErrorContext(ctx, "Failed to publish message",
			"topic", p.writer.Topic,
			"key", env.Key,
			slog.Any("error", err))
		return err
	}

	slog.DebugContext(ctx, "Message published",
		"topic", p.writer.Topic,
		"key", env.Key,
		"event_id", env.EventID)
	return nil
}

// Close flushes pending writes and closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

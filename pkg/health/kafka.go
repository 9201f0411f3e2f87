package health

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaChecker checks that a broker is reachable and knows the forwarding topic.
type KafkaChecker struct {
	brokers []string
	topic   string
}

// NewKafkaChecker creates a new Kafka health checker.
func NewKafkaChecker(brokers []string, topic string) *KafkaChecker {
	return &KafkaChecker{brokers: brokers, topic: topic}
}

// Name returns "kafka".
func (c *KafkaChecker) Name() string {
	return "kafka"
}

// Check connects to the first reachable broker and reads the topic's partitions.
func (c *KafkaChecker) Check(ctx context.Context) Result {
	for _, broker := range c.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			continue
		}
		defer func() { _ = conn.Close() }()

		if c.topic == "" {
			return Up()
		}
		partitions, err := conn.ReadPartitions(c.topic)
		if err != nil {
			return Down(fmt.Sprintf("topic %s: %v", c.topic, err))
		}
		if len(partitions) == 0 {
			return Down(fmt.Sprintf("topic %s has no partitions", c.topic))
		}
		return Up()
	}
	return Down("all brokers unreachable")
}

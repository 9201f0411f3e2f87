package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	KafkaPublishDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ipn",
			Subsystem: "kafka",
			Name:      "publish_duration_seconds",
			Help:      "Kafka publish duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"topic", "status"},
	)

	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ipn",
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Total number of forwarded IPN messages published to Kafka",
		},
		[]string{"topic", "status"},
	)
)

func init() {
	Registry.MustRegister(KafkaPublishDuration, KafkaMessagesPublished)
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	IPNVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ipn",
			Subsystem: "verifier",
			Name:      "verifications_total",
			Help:      "Total number of IPN confirmation round-trips by result",
		},
		[]string{"result"},
	)

	IPNVerificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ipn",
			Subsystem: "verifier",
			Name:      "verification_duration_seconds",
			Help:      "IPN confirmation round-trip latency in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// Labels stay bounded: txn_type is untrusted input and is not used as a label.
	IPNHandlerInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ipn",
			Subsystem: "dispatch",
			Name:      "handler_invocations_total",
			Help:      "Total number of IPN handler invocations by result",
		},
		[]string{"result"},
	)

	IPNMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ipn",
			Subsystem: "listener",
			Name:      "messages_total",
			Help:      "Total number of IPN messages handled by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		IPNVerificationsTotal,
		IPNVerificationDuration,
		IPNHandlerInvocations,
		IPNMessagesTotal,
	)
}

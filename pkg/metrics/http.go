package metrics

import "github.com/prometheus/client_golang/prometheus"

var httpLabels = []string{"handler", "method", "status_code"}

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ipn",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving a request, including the confirmation round-trip for /ipn",
		// Upper buckets cover the verifier timeout.
		Buckets: []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, httpLabels)

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ipn",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requests served by route, method and status",
	}, httpLabels)

	HTTPRequestSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ipn",
		Subsystem: "http",
		Name:      "request_size_bytes",
		Help:      "Declared request body size",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
	}, []string{"handler"})

	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ipn",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Requests currently being served",
	})
)

func init() {
	Registry.MustRegister(HTTPRequestDuration, HTTPRequestsTotal, HTTPRequestSize, HTTPInFlight)
}

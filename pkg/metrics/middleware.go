package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unknown"

// GinMiddleware records latency, status, body size and concurrency per route.
// Requests that match no route are folded into one label value.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		HTTPInFlight.Inc()
		defer HTTPInFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		if n := c.Request.ContentLength; n > 0 {
			HTTPRequestSize.WithLabelValues(route).Observe(float64(n))
		}

		start := time.Now()
		c.Next()

		labels := []string{route, c.Request.Method, strconv.Itoa(c.Writer.Status())}
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(labels...).Inc()
	}
}

package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LivenessHandler answers as long as the process can serve HTTP.
func LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Up())
	}
}

// ReadinessHandler runs the registry within timeout and answers 503 when any
// check is down, so the load balancer stops routing notifications here.
func ReadinessHandler(registry *Registry, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		resp := registry.CheckAll(ctx)
		if resp.Status == StatusUp {
			c.JSON(http.StatusOK, resp)
			return
		}

		for _, check := range resp.Checks {
			if check.Status != StatusUp {
				slog.WarnContext(ctx, "Readiness check failed",
					"check", check.Name,
					"message", check.Message,
					"latency_ms", check.LatencyMS)
			}
		}
		c.JSON(http.StatusServiceUnavailable, resp)
	}
}

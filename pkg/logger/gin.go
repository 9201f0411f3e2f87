package logger

import (
	"log/slog"
	"time"

	"PaypalIPNListener/pkg/correlation"

	"github.com/gin-gonic/gin"
)

// CorrelationMiddleware attaches a correlation ID to the request context and
// echoes it in the response. A well-formed inbound X-Correlation-ID is reused.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := correlation.Accept(c.GetHeader(correlation.HeaderName))
		c.Request = c.Request.WithContext(correlation.WithID(c.Request.Context(), id))
		c.Header(correlation.HeaderName, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. Bodies are not logged: IPN
// payloads carry payer details and are audited separately.
// Server errors log at ERROR so failed deliveries stand out.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"bytes_in", c.Request.ContentLength,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP())
	}
}

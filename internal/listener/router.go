package listener

import (
	"PaypalIPNListener/internal/listener/handlers"
	"PaypalIPNListener/pkg/health"
	"PaypalIPNListener/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type Router struct {
	ipn            *handlers.IPNHandler
	healthRegistry *health.Registry
}

func NewRouter(ipn *handlers.IPNHandler, healthRegistry *health.Registry) *Router {
	return &Router{
		ipn:            ipn,
		healthRegistry: healthRegistry,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	engine.POST("/ipn", r.ipn.Notify)
}

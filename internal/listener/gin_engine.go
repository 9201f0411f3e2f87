package listener

import (
	"PaypalIPNListener/pkg/logger"
	"PaypalIPNListener/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(logger.CorrelationMiddleware(), metrics.GinMiddleware(), logger.RequestLogger(), gin.Recovery())
	return engine
}

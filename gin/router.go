package gin

import (
	ginlib "github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the middleware and routes. gatherer serves /metrics.
func NewRouter(h *Handler, logger *zap.Logger, metrics *Metrics, gatherer prometheus.Gatherer) *ginlib.Engine {
	router := ginlib.New()

	router.Use(RequestID())
	router.Use(Logger(logger))
	router.Use(Recovery(logger))
	if metrics != nil {
		router.Use(Instrument(metrics))
	}

	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/metrics", ginlib.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", h.Analyze)
		v1.GET("/badges", h.Badges)
	}

	return router
}

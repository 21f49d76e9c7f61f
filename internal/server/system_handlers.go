package server

import (
	"net/http"

	"gymdesk/internal/api"
	"gymdesk/internal/metrics"
	"gymdesk/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(notifyService *notify.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var queueDepth int64
		if notifyService != nil {
			queueDepth = notifyService.QueueLength(c.Request.Context())
			metrics.SetNotifyQueueLength(queueDepth)
		}
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok", NotifyQueueDepth: queueDepth})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

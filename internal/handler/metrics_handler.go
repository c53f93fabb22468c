package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdash/course-api/internal/service"
)

// MetricsHandler serves the Prometheus scrape endpoint.
type MetricsHandler struct {
	scrape http.Handler
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	h := &MetricsHandler{}
	if metrics != nil {
		h.scrape = metrics.Handler()
	}
	return h
}

// Prometheus exposes collector output in the Prometheus text format.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.scrape == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.scrape.ServeHTTP(c.Writer, c.Request)
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdash/course-api/internal/service"
)

// Metrics records per-request throughput and latency. Route templates are
// used as the path label so course keys do not explode cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	if metricsSvc == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

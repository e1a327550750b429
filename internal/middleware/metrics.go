package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/service"
)

// Metrics observes every request against the route template, so exam and
// examinee numbers do not explode label cardinality. Probe endpoints are
// skipped.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" || path == "/health" || path == "/ready" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

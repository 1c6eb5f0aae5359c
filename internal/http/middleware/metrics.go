package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"crudkit/internal/telemetry"
)

// Metrics labels requests by route template, not raw path.
func Metrics(metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

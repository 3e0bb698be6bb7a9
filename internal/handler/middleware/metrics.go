package middleware

import (
	"strconv"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware labels by route template so path parameters do not
// explode label cardinality.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.Request(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

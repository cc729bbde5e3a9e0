package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shopcrm/backend/internal/infrastructure/telemetry"
)

// Metrics records request count, latency and in-flight requests per route.
// The matched route template is used as the label so path parameters do not
// explode cardinality; unmatched requests share a single label value.
func Metrics(m *telemetry.HTTPMetrics, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		done := m.Begin(c.Request.Method, c.FullPath())
		c.Next()
		done(c.Writer.Status())
	}
}

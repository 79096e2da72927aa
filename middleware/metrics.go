package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/metrics"
)

// Metrics records request counts, latency and auth failures
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		m.ObserveRequest(c.Request.Method, c.FullPath(), status, time.Since(start))
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			if kind := FailureKind(c); kind != "" {
				m.AuthFailure(kind)
			}
		}
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/ctxutil"
	"github.com/ncobase/commerce/logging/logger"
)

// Logger logs one line per request
func Logger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", ctxutil.ClientIP(c.Request),
		}
		if kind := FailureKind(c); kind != "" {
			fields = append(fields, "error", kind)
		}

		switch {
		case status >= 500:
			l.Error(ctx, "request", fields...)
		case status >= 400:
			l.Warn(ctx, "request", fields...)
		default:
			l.Info(ctx, "request", fields...)
		}
	}
}

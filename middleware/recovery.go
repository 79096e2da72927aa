package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/logging/observes"
)

// Recovery turns panics into a generic 500 and reports them
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				ctx := c.Request.Context()
				l.Error(ctx, "panic recovered", "panic", fmt.Sprint(v), "path", c.Request.URL.Path)
				observes.CaptureRecovered(ctx, v, c.Request)
				if !c.Writer.Written() {
					abort(c, ecode.New(ecode.ServerErr))
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/consts"
	"github.com/ncobase/commerce/ctxutil"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/metrics"
	"github.com/ncobase/commerce/net/resp"
	"github.com/ncobase/commerce/security/ratelimit"
)

// RateLimit applies the limiter policy selected by the request path.
// Store failures let the request through.
func RateLimit(limiter *ratelimit.Limiter, m *metrics.Metrics, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}
		policy := limiter.PolicyFor(c.Request.URL.Path)
		if policy == ratelimit.PolicyNone {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		d, err := limiter.CheckAndConsume(ctx, ctxutil.ClientIP(c.Request), policy)
		if err != nil {
			l.Warn(ctx, "rate limiter unavailable, allowing request", "error", err, "policy", string(policy))
			c.Next()
			return
		}
		if m != nil {
			m.RateLimitDecision(string(policy), d.Allowed)
		}
		if d.Allowed {
			c.Next()
			return
		}

		l.Warn(ctx, "rate limit exceeded", "policy", string(policy), "count", d.Count, "limit", d.Limit)
		c.Header(consts.RetryAfterHeader, strconv.Itoa(retryAfterSeconds(d)))
		c.Set(consts.FailureKindKey, ecode.Kind(ecode.LimitExceed))
		resp.TooManyRequests(c.Writer)
		c.Abort()
	}
}

func retryAfterSeconds(d ratelimit.Decision) int {
	s := int(math.Ceil(d.RetryAfter.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// Package middleware implements the request pipeline:
// trace, logger, metrics, recovery, rate limit, authenticate and authorize.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/consts"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/metrics"
	"github.com/ncobase/commerce/net/resp"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/ratelimit"
	"github.com/ncobase/commerce/security/token"
)

// Pipeline returns the request pipeline in order.
// Recovery sits inside Logger and Metrics so recovered panics are still
// logged and counted as 500s.
func Pipeline(
	tokens *token.Service,
	policy *authz.Policy,
	limiter *ratelimit.Limiter,
	m *metrics.Metrics,
	l *logger.Logger,
) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		Trace(),
		Logger(l),
		Metrics(m),
		Recovery(l),
		RateLimit(limiter, m, l),
		Authenticate(tokens, policy),
		Authorize(policy),
	}
}

// abort writes the classified error body and stops the chain
func abort(c *gin.Context, err error) {
	e := ecode.From(err)
	c.Set(consts.FailureKindKey, e.Kind)
	resp.Fail(c.Writer, c.Request, e)
	c.Abort()
}

// FailureKind returns the kind a request was aborted with, if any
func FailureKind(c *gin.Context) string {
	return c.GetString(consts.FailureKindKey)
}

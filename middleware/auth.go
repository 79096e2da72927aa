package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/consts"
	"github.com/ncobase/commerce/ctxutil"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/security/authz"
	"github.com/ncobase/commerce/security/token"
)

// Authenticate matches the route rule and validates the bearer token.
// A presented token must be valid even on routes that permit anonymous access.
func Authenticate(tokens *token.Service, policy *authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule, matched := policy.Match(c.Request.Method, c.Request.URL.Path)
		if matched {
			c.Set(consts.RuleKey, rule)
		}

		raw := ctxutil.BearerToken(c.Request)
		if raw == "" {
			if matched && rule.PermitAll {
				c.Next()
				return
			}
			abort(c, ecode.New(ecode.NoLogin))
			return
		}

		claims, err := tokens.Validate(c.Request.Context(), raw)
		if err != nil {
			abort(c, err)
			return
		}
		if claims.IsRefresh() {
			abort(c, ecode.New(ecode.TokenMalformed, "refresh token cannot be used as bearer token"))
			return
		}

		ctx := ctxutil.SetUserID(c.Request.Context(), claims.SubjectID)
		ctx = ctxutil.SetUserRoles(ctx, claims.Roles)
		ctx = ctxutil.SetToken(ctx, raw)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize enforces the rule matched by Authenticate
func Authorize(policy *authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule := matchedRule(c, policy)
		authenticated := ctxutil.GetUserID(c.Request.Context()) != ""

		if rule.Allows(authenticated, ctxutil.GetUserRoles(c.Request.Context())) {
			c.Next()
			return
		}
		if !authenticated {
			abort(c, ecode.New(ecode.NoLogin))
			return
		}
		abort(c, ecode.New(ecode.AccessDenied))
	}
}

func matchedRule(c *gin.Context, policy *authz.Policy) *authz.Rule {
	if v, ok := c.Get(consts.RuleKey); ok {
		if r, ok := v.(*authz.Rule); ok {
			return r
		}
	}
	if r, ok := policy.Match(c.Request.Method, c.Request.URL.Path); ok {
		return r
	}
	return nil
}

// CurrentUserID returns the authenticated subject id
func CurrentUserID(c *gin.Context) string {
	return ctxutil.GetUserID(c.Request.Context())
}

// CurrentToken returns the bearer token of the authenticated request
func CurrentToken(c *gin.Context) string {
	return ctxutil.GetToken(c.Request.Context())
}

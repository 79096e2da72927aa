// Package handler exposes the HTTP endpoints of the service.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/consts"
	"github.com/ncobase/commerce/ecode"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/logging/observes"
	"github.com/ncobase/commerce/net/resp"
)

// Handler groups all route handlers
type Handler struct {
	Auth   *AuthHandler
	OAuth  *OAuthHandler
	Admin  *AdminHandler
	Health *HealthHandler
}

// New creates a new handler group
func New(auth *AuthHandler, oauth *OAuthHandler, admin *AdminHandler, health *HealthHandler) *Handler {
	return &Handler{Auth: auth, OAuth: oauth, Admin: admin, Health: health}
}

// fail writes err as the structured error body.
// Unclassified errors are logged and reported before their detail is dropped.
func fail(c *gin.Context, l *logger.Logger, err error) {
	e := ecode.From(err)
	if e.Code == ecode.ServerErr {
		l.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		observes.CaptureError(c.Request.Context(), err, c.Request)
	}
	c.Set(consts.FailureKindKey, e.Kind)
	resp.Fail(c.Writer, c.Request, e)
}

// bind decodes the JSON body into dst
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return ecode.Wrap(ecode.RequestErr, err, "invalid request body")
	}
	return nil
}

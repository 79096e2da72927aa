package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/middleware"
	"github.com/ncobase/commerce/net/resp"
	"github.com/ncobase/commerce/service"
	"github.com/ncobase/commerce/structs"
)

// AuthHandler handles local authentication requests
type AuthHandler struct {
	auth   *service.AuthService
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, l *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: l}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var body structs.RegisterBody
	if err := bind(c, &body); err != nil {
		fail(c, h.logger, err)
		return
	}
	res, err := h.auth.Register(c.Request.Context(), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, res)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var body structs.LoginBody
	if err := bind(c, &body); err != nil {
		fail(c, h.logger, err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var body structs.RefreshBody
	if err := bind(c, &body); err != nil {
		fail(c, h.logger, err)
		return
	}
	res, err := h.auth.Refresh(c.Request.Context(), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// Logout handles POST /api/auth/logout. The body is optional.
func (h *AuthHandler) Logout(c *gin.Context) {
	var body structs.LogoutBody
	if c.Request.ContentLength > 0 {
		if err := bind(c, &body); err != nil {
			fail(c, h.logger, err)
			return
		}
	}
	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentToken(c), &body); err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, "logged out")
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	me, err := h.auth.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, me)
}

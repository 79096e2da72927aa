package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/net/resp"
	"github.com/ncobase/commerce/service"
	"github.com/ncobase/commerce/structs"
)

// AdminHandler handles credential administration
type AdminHandler struct {
	auth   *service.AuthService
	logger *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(auth *service.AuthService, l *logger.Logger) *AdminHandler {
	return &AdminHandler{auth: auth, logger: l}
}

// Revoke handles POST /api/admin/users/:id/revoke
func (h *AdminHandler) Revoke(c *gin.Context) {
	if err := h.auth.RevokeSessions(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, "sessions revoked")
}

// UpdateRoles handles PUT /api/admin/users/:id/roles
func (h *AdminHandler) UpdateRoles(c *gin.Context) {
	var body structs.RolesBody
	if err := bind(c, &body); err != nil {
		fail(c, h.logger, err)
		return
	}
	view, err := h.auth.UpdateRoles(c.Request.Context(), c.Param("id"), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, view)
}

// UpdateStatus handles PUT /api/admin/users/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var body structs.StatusBody
	if err := bind(c, &body); err != nil {
		fail(c, h.logger, err)
		return
	}
	view, err := h.auth.UpdateStatus(c.Request.Context(), c.Param("id"), &body)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, view)
}

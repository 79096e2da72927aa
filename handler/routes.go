package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts all endpoints on e
func RegisterRoutes(e *gin.Engine, h *Handler) {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", h.Health.Metrics)

	auth := e.Group("/api/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
	}

	oauth2 := e.Group("/oauth2")
	{
		oauth2.GET("/authorize/:provider", h.OAuth.Authorize)
		oauth2.GET("/callback/:provider", h.OAuth.Callback)
	}

	admin := e.Group("/api/admin/users/:id")
	{
		admin.POST("/revoke", h.Admin.Revoke)
		admin.PUT("/roles", h.Admin.UpdateRoles)
		admin.PUT("/status", h.Admin.UpdateStatus)
	}
}

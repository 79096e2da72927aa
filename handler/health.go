package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/commerce/data"
	"github.com/ncobase/commerce/metrics"
	"github.com/ncobase/commerce/net/resp"
	"github.com/ncobase/commerce/version"
)

// HealthHandler serves liveness and metrics endpoints
type HealthHandler struct {
	data    *data.Data
	metrics *metrics.Metrics
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(d *data.Data, m *metrics.Metrics) *HealthHandler {
	return &HealthHandler{data: d, metrics: m}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.data.Health(c.Request.Context())
	report["version"] = version.GetVersionInfo().Version

	status := http.StatusOK
	if report["status"] != "healthy" {
		status = http.StatusServiceUnavailable
	}
	resp.WithStatusCode(c.Writer, status, report)
}

// Metrics handles GET /metrics
func (h *HealthHandler) Metrics(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

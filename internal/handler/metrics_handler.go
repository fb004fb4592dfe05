package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-events-api/internal/models"
	"github.com/noah-isme/college-events-api/internal/service"
)

type readinessSource interface {
	Current(ctx context.Context) (*models.SessionInfo, error)
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	source  readinessSource
}

// NewMetricsHandler constructs a metrics handler. source may be nil.
func NewMetricsHandler(metrics *service.MetricsService, source readinessSource) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, source: source}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness checks.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports ready once the state store has a session user.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.source != nil {
		if _, err := h.source.Current(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

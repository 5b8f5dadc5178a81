package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/internal/service"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type sessionCounter interface {
	Len() int
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics  *service.MetricsService
	sessions Pinger
	hub      sessionCounter
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, sessions Pinger, hub sessionCounter) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, sessions: sessions, hub: hub}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Summary returns the counters as JSON for the admin status page.
func (h *MetricsHandler) Summary(c *gin.Context) {
	response.OK(c, h.metrics.Snapshot())
}

// Health responds with a generic OK payload for liveness probes.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the session backend and reports how many sessions hold stores.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.sessions != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.sessions.Ping(ctx); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, http.StatusServiceUnavailable, "session store unavailable"))
			return
		}
	}
	active := 0
	if h.hub != nil {
		active = h.hub.Len()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "active_sessions": active})
}

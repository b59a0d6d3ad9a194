package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/astro-prediction/internal/domain/astro"
	"github.com/yanqian/astro-prediction/internal/domain/geo"
)

const rootMessage = "Astro Prediction API"

// HealthChecker reports whether the backing data store is reachable.
type HealthChecker interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	astroSvc astro.Service
	geoSvc   geo.Service
	health   HealthChecker
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(astroSvc astro.Service, geoSvc geo.Service, health HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{
		astroSvc: astroSvc,
		geoSvc:   geoSvc,
		health:   health,
		logger:   logger.With("component", "http.handler"),
	}
}

// Root answers the API liveness banner.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": rootMessage})
}

// SearchCity returns geocoding candidates for a free-text query.
func (h *Handler) SearchCity(c *gin.Context) {
	var req geo.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err, nil))
		return
	}

	cities, err := h.geoSvc.SearchCity(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, cities)
}

// GetPrediction runs the chart lookup and narrative generation.
func (h *Handler) GetPrediction(c *gin.Context) {
	var req astro.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err, astro.BindingMessage))
		return
	}

	resp, err := h.astroSvc.Predict(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health reports readiness of the data store.
func (h *Handler) Health(c *gin.Context) {
	if h.health == nil || !h.health.Enabled() {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "datastore": "disabled"})
		return
	}
	if err := h.health.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("datastore ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "datastore": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "datastore": "ok"})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"propview/internal/caching"
	"propview/internal/portal"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	cacheSvc  caching.CacheService
	portalAPI portal.PortalAPI
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(cacheSvc caching.CacheService, portalAPI portal.PortalAPI) *HealthHandlers {
	return &HealthHandlers{
		cacheSvc:  cacheSvc,
		portalAPI: portalAPI,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck reports liveness plus the state of the service's dependencies.
// A degraded dependency does not fail the check; the dashboard keeps serving
// with whatever data it can get.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   "1.0.0",
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	if err := h.portalAPI.Ping(ctx); err != nil {
		health.Services["portal"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["portal"] = "healthy"
	}

	return c.JSON(http.StatusOK, health)
}

// ReadinessCheck reports whether the service can reach the upstream portal.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.portalAPI.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}

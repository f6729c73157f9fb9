package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"propview/internal/common"
	"propview/internal/services"
)

// DashboardHandlers handles dashboard view-state requests
type DashboardHandlers struct {
	dashboardService services.DashboardService
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(dashboardService services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetSummary handles getting the composed dashboard summary. The summary
// always renders with best-available data; degraded collections show their
// zero/empty defaults instead of an error.
func (h *DashboardHandlers) GetSummary(c echo.Context) error {
	summary, err := h.dashboardService.GetSummary(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to build dashboard summary")
	}

	resp := map[string]interface{}{
		"summary": summary,
	}
	if identity, ok := common.GetIdentityFromContext(c.Request().Context()); ok {
		resp["identity"] = identity
	}

	return c.JSON(http.StatusOK, resp)
}

// RefreshSummary handles forcing a rebuild of the cached summary.
func (h *DashboardHandlers) RefreshSummary(c echo.Context) error {
	summary, err := h.dashboardService.RefreshSummary(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to refresh dashboard summary")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": summary,
	})
}

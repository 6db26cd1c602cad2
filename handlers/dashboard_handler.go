package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"alumni-portal/services"
)

// DashboardHandler serves the aggregated portal analytics.
type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /api/v1/dashboard/stats. Directors see the whole
// institution; everyone else is scoped to their own department.
func (h *DashboardHandler) Stats(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Authentication required", nil)
	}

	departmentID := ""
	if e.Auth.GetString("role") != "director" {
		departmentID = e.Auth.GetString("department")
		if departmentID == "" {
			return apis.NewForbiddenError("No department assigned to this account", nil)
		}
	}

	stats, err := h.dashboard.Stats(e.Request.Context(), departmentID)
	if err != nil {
		return apis.NewInternalServerError("Dashboard stats unavailable", err)
	}
	return e.JSON(http.StatusOK, stats)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/ai-hrms/hr-management-api/internal/errors"
	"github.com/ai-hrms/hr-management-api/internal/middleware"
	"github.com/ai-hrms/hr-management-api/internal/services"
)

// DashboardHandler serves the workforce analytics summary.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the analytics summary for the organization
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	orgID, exists := middleware.GetOrganizationID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(orgID)
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

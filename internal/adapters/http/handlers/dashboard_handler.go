package handlers

import (
	"errors"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the dashboard of the caller's role
// @Summary Dashboard
// @Description customer: own leads; sales, RM, operations: pipeline; credit: review queue with offers; admin: pipeline, users and money totals
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.Get(c.Context(), actor)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			return response.Forbidden(c, "Unknown role")
		}
		return internalError(c, err, "Failed to get dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

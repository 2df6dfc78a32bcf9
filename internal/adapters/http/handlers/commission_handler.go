package handlers

import (
	"errors"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/pagination"
	"gcbp-mortgage/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CommissionHandler handles agent commission endpoints (Admin only)
type CommissionHandler struct {
	commissionService *services.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// ListCommissions lists commissions
// @Summary List commissions
// @Tags Commissions
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING or PAID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /commissions [get]
func (h *CommissionHandler) ListCommissions(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := domain.CommissionFilter{Offset: params.Offset, Limit: params.Limit}

	switch raw := domain.CommissionStatus(c.Query("status")); raw {
	case "":
	case domain.CommissionPending, domain.CommissionPaid:
		filter.Status = &raw
	default:
		return response.BadRequest(c, "Invalid status filter")
	}

	items, total, err := h.commissionService.List(c.Context(), filter)
	if err != nil {
		return internalError(c, err, "Failed to list commissions")
	}

	out := make([]CommissionResponse, len(items))
	for i, item := range items {
		out[i] = newCommissionResponse(item)
	}
	return response.Success(c, "Commissions retrieved successfully", pagination.NewResponse(out, params, total))
}

// PayCommission marks a commission as paid
// @Summary Pay commission
// @Tags Commissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Commission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /commissions/{id}/pay [put]
func (h *CommissionHandler) PayCommission(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid commission ID")
	}
	adminID, _ := c.Locals("userID").(uint)

	commission, err := h.commissionService.MarkPaid(c.Context(), adminID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCommissionNotFound):
			return response.NotFound(c, "Commission not found")
		case errors.Is(err, domain.ErrCommissionPaid):
			return response.Conflict(c, "Commission already paid")
		default:
			return internalError(c, err, "Failed to pay commission")
		}
	}

	return response.Success(c, "Commission paid successfully", fiber.Map{
		"commission": newCommissionResponse(commission),
	})
}

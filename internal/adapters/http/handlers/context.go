package handlers

import (
	"errors"
	"strconv"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/logger"
	"gcbp-mortgage/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errNoActor = errors.New("no authenticated user in context")

// actorFrom builds the acting user from the locals set by AuthMiddleware
func actorFrom(c *fiber.Ctx) (services.Actor, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return services.Actor{}, errNoActor
	}
	role, ok := c.Locals("role").(domain.Role)
	if !ok {
		return services.Actor{}, errNoActor
	}
	return services.Actor{UserID: userID, Role: role, IP: c.IP()}, nil
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidInput
	}
	return uint(id), nil
}

// transitionDetail is the 422 payload of a refused status change
type transitionDetail struct {
	CurrentStatus      domain.Status   `json:"current_status"`
	AllowedTransitions []domain.Status `json:"allowed_transitions"`
}

// leadError maps lead service errors onto responses
func leadError(c *fiber.Ctx, err error, fallback string) error {
	var te *domain.TransitionError
	switch {
	case errors.As(err, &te):
		allowed := domain.AllowedTargets(te.From, te.Role)
		if allowed == nil {
			allowed = []domain.Status{}
		}
		return response.UnprocessableEntity(c, "Status transition not allowed", transitionDetail{
			CurrentStatus:      te.From,
			AllowedTransitions: allowed,
		})
	case errors.Is(err, domain.ErrLeadNotFound), errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Lead not found")
	case errors.Is(err, domain.ErrLeadConflict):
		return response.Conflict(c, "Lead was modified by someone else, reload and try again")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnknownRole):
		return response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return internalError(c, err, fallback)
	}
}

// internalError logs err and answers 500 with a generic message
func internalError(c *fiber.Ctx, err error, message string) error {
	logger.L().Error("❌ "+message,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("requestid")),
		zap.Error(err),
	)
	return response.InternalServerError(c, message)
}

package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/logger"
)

// CommissionService manages agent commission payouts
type CommissionService struct {
	commissions CommissionRepository
	now         func() time.Time
}

// NewCommissionService creates a new commission service
func NewCommissionService(commissions CommissionRepository) *CommissionService {
	return &CommissionService{commissions: commissions, now: time.Now}
}

// List lists commissions matching filter
func (s *CommissionService) List(ctx context.Context, filter domain.CommissionFilter) ([]*domain.Commission, int64, error) {
	return s.commissions.List(ctx, filter)
}

// MarkPaid settles a PENDING commission. Paying twice fails with domain.ErrCommissionPaid.
func (s *CommissionService) MarkPaid(ctx context.Context, adminID, id uint) (*domain.Commission, error) {
	c, err := s.commissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == domain.CommissionPaid {
		return nil, domain.ErrCommissionPaid
	}

	paidAt := s.now()
	if err := s.commissions.MarkPaid(ctx, id, paidAt); err != nil {
		return nil, err
	}

	c.Status = domain.CommissionPaid
	c.PaidAt = &paidAt

	logger.L().Info("💸 Commission paid",
		zap.Uint("commission_id", id),
		zap.Uint("agent_id", c.AgentID),
		zap.Uint("admin_id", adminID),
		zap.Float64("amount", c.Amount),
	)
	return c, nil
}

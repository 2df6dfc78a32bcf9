package repositories

import (
	"context"

	"gorm.io/gorm"

	"gcbp-mortgage/internal/adapters/persistence/models"
	"gcbp-mortgage/internal/core/domain"
)

// LeadTransitionRepository handles status history data access
type LeadTransitionRepository struct {
	db *gorm.DB
}

// NewLeadTransitionRepository creates a new lead transition repository
func NewLeadTransitionRepository(db *gorm.DB) *LeadTransitionRepository {
	return &LeadTransitionRepository{db: db}
}

// Create appends a history entry
func (r *LeadTransitionRepository) Create(ctx context.Context, t *domain.LeadTransition) error {
	m := models.LeadTransitionFromDomain(t)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	return nil
}

// ListByLead gets the history of a lead, oldest first
func (r *LeadTransitionRepository) ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadTransition, error) {
	var rows []*models.LeadTransition
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]*domain.LeadTransition, len(rows))
	for i, m := range rows {
		history[i] = m.ToDomain()
	}
	return history, nil
}

package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gcbp-mortgage/internal/adapters/persistence/models"
	"gcbp-mortgage/internal/core/domain"
)

// CommissionRepository handles commission data access
type CommissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// Create creates a commission. A second commission for the same lead fails
// with domain.ErrDuplicateEntry.
func (r *CommissionRepository) Create(ctx context.Context, c *domain.Commission) error {
	m := models.CommissionFromDomain(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err, domain.ErrNotFound)
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a commission by ID
func (r *CommissionRepository) GetByID(ctx context.Context, id uint) (*domain.Commission, error) {
	var m models.Commission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, domain.ErrCommissionNotFound)
	}
	return m.ToDomain(), nil
}

// List lists commissions, newest first
func (r *CommissionRepository) List(ctx context.Context, filter domain.CommissionFilter) ([]*domain.Commission, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Commission{})
		if filter.Status != nil {
			q = q.Where("status = ?", string(*filter.Status))
		}
		if filter.AgentID != nil {
			q = q.Where("agent_id = ?", *filter.AgentID)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := scoped().Order("id DESC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}

	var rows []*models.Commission
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*domain.Commission, len(rows))
	for i, m := range rows {
		out[i] = m.ToDomain()
	}
	return out, total, nil
}

// MarkPaid flips a PENDING commission to PAID
func (r *CommissionRepository) MarkPaid(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Commission{}).
		Where("id = ? AND status = ?", id, string(domain.CommissionPending)).
		Updates(map[string]interface{}{
			"status":  string(domain.CommissionPaid),
			"paid_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommissionPaid
	}
	return nil
}

// SumPending sums commissions not yet paid
func (r *CommissionRepository) SumPending(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&models.Commission{}).
		Where("status = ?", string(domain.CommissionPending)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

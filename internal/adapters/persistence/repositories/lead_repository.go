package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gcbp-mortgage/internal/adapters/persistence/models"
	"gcbp-mortgage/internal/core/domain"
)

// LeadRepository handles lead data access
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a lead and fills in its generated ID and version
func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	m := models.LeadFromDomain(lead)
	if m.Version == 0 {
		m.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err, domain.ErrLeadNotFound)
	}

	lead.ID = m.ID
	lead.Version = m.Version
	lead.CreatedAt = m.CreatedAt
	lead.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a lead by ID
func (r *LeadRepository) GetByID(ctx context.Context, id uint) (*domain.Lead, error) {
	var m models.Lead
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, domain.ErrLeadNotFound)
	}
	return m.ToDomain(), nil
}

// List lists leads matching filter, newest first
func (r *LeadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, int64, error) {
	var total int64
	if err := r.scoped(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.scoped(ctx, filter).Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}

	var rows []*models.Lead
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	leads := make([]*domain.Lead, len(rows))
	for i, m := range rows {
		leads[i] = m.ToDomain()
	}
	return leads, total, nil
}

type statusCount struct {
	Status string
	Total  int64
}

// CountByStatus counts leads matching filter grouped by status
func (r *LeadRepository) CountByStatus(ctx context.Context, filter domain.LeadFilter) (map[domain.Status]int64, error) {
	var rows []statusCount
	err := r.scoped(ctx, filter).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStatusMap(rows), nil
}

// SumLoanAmount sums requested amounts of leads in the given statuses (all leads when none given)
func (r *LeadRepository) SumLoanAmount(ctx context.Context, statuses ...domain.Status) (float64, error) {
	var sum float64
	err := r.scoped(ctx, domain.LeadFilter{Statuses: statuses}).
		Select("COALESCE(SUM(loan_amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// Save writes every mutable column when the stored version still equals
// lead.Version, and bumps the version.
func (r *LeadRepository) Save(ctx context.Context, lead *domain.Lead) error {
	res := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ? AND version = ?", lead.ID, lead.Version).
		Updates(map[string]interface{}{
			"name":           lead.Name,
			"phone":          lead.Phone,
			"email":          lead.Email,
			"pan":            lead.PAN,
			"aadhar":         lead.Aadhar,
			"income":         lead.Income,
			"property_value": lead.PropertyValue,
			"loan_amount":    lead.LoanAmount,
			"tenure":         lead.Tenure,
			"status":         string(lead.Status),
			"assigned_to":    lead.AssignedTo,
			"rm_id":          lead.RMID,
			"updated_at":     lead.UpdatedAt,
			"version":        gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLeadConflict
	}

	lead.Version++
	return nil
}

// CountStale counts non-terminal leads untouched since before, grouped by status
func (r *LeadRepository) CountStale(ctx context.Context, before time.Time) (map[domain.Status]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("updated_at < ?", before).
		Where("status NOT IN ?", []string{string(domain.StatusDisbursed), string(domain.StatusRejected)}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStatusMap(rows), nil
}

func (r *LeadRepository) scoped(ctx context.Context, filter domain.LeadFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Lead{})
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("status IN ?", statuses)
	}
	return q
}

func toStatusMap(rows []statusCount) map[domain.Status]int64 {
	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = row.Total
	}
	return counts
}

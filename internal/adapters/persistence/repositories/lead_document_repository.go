package repositories

import (
	"context"

	"gorm.io/gorm"

	"gcbp-mortgage/internal/adapters/persistence/models"
	"gcbp-mortgage/internal/core/domain"
)

// LeadDocumentRepository handles lead document data access
type LeadDocumentRepository struct {
	db *gorm.DB
}

// NewLeadDocumentRepository creates a new lead document repository
func NewLeadDocumentRepository(db *gorm.DB) *LeadDocumentRepository {
	return &LeadDocumentRepository{db: db}
}

// Create creates a document record
func (r *LeadDocumentRepository) Create(ctx context.Context, doc *domain.LeadDocument) error {
	m := models.LeadDocumentFromDomain(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	doc.ID = m.ID
	doc.CreatedAt = m.CreatedAt
	doc.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a document by ID
func (r *LeadDocumentRepository) GetByID(ctx context.Context, id uint) (*domain.LeadDocument, error) {
	var m models.LeadDocument
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return m.ToDomain(), nil
}

// ListByLead gets all documents of a lead
func (r *LeadDocumentRepository) ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadDocument, error) {
	var rows []*models.LeadDocument
	if err := r.db.WithContext(ctx).Where("lead_id = ?", leadID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]*domain.LeadDocument, len(rows))
	for i, m := range rows {
		docs[i] = m.ToDomain()
	}
	return docs, nil
}

// Update writes the verification columns of a document
func (r *LeadDocumentRepository) Update(ctx context.Context, doc *domain.LeadDocument) error {
	return r.db.WithContext(ctx).
		Model(&models.LeadDocument{ID: doc.ID}).
		Updates(map[string]interface{}{
			"status":     string(doc.Status),
			"checked_by": doc.CheckedBy,
			"checked_at": doc.CheckedAt,
			"remark":     doc.Remark,
		}).Error
}

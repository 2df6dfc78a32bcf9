package repositories

import (
	"context"

	"gorm.io/gorm"

	"gcbp-mortgage/internal/adapters/persistence/models"
	"gcbp-mortgage/internal/core/domain"
)

// BankOfferRepository reads the offer catalog
type BankOfferRepository struct {
	db *gorm.DB
}

// NewBankOfferRepository creates a new bank offer repository
func NewBankOfferRepository(db *gorm.DB) *BankOfferRepository {
	return &BankOfferRepository{db: db}
}

// List returns every offer in insertion order
func (r *BankOfferRepository) List(ctx context.Context) ([]domain.BankOffer, error) {
	var rows []models.BankOffer
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	offers := make([]domain.BankOffer, len(rows))
	for i := range rows {
		offers[i] = rows[i].ToDomain()
	}
	return offers, nil
}

package services

import (
	"context"
	"fmt"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/metrics"
)

// OfferService matches applicants against the bank offer catalog
type OfferService struct {
	offers  BankOfferRepository
	metrics *metrics.Registry
}

// NewOfferService creates a new offer service
func NewOfferService(offers BankOfferRepository, m *metrics.Registry) *OfferService {
	return &OfferService{offers: offers, metrics: m}
}

// Catalog returns all offers in insertion order
func (s *OfferService) Catalog(ctx context.Context) ([]domain.BankOffer, error) {
	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bank offers: %w", err)
	}
	return offers, nil
}

// Recommend ranks the offers open to a monthly income
func (s *OfferService) Recommend(ctx context.Context, income float64) (domain.Recommendation, error) {
	if income < 0 {
		return domain.Recommendation{}, domain.ErrInvalidInput
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return domain.Recommendation{}, err
	}

	rec := domain.Match(income, catalog)
	s.metrics.Recommendation(!rec.NoMatch)
	return rec, nil
}

// ForLead recommends offers for the lead's income
func (s *OfferService) ForLead(ctx context.Context, lead *domain.Lead) (domain.Recommendation, error) {
	return s.Recommend(ctx, lead.Income)
}

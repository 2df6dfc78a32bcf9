package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/metrics"
)

func TestOfferService_Recommend(t *testing.T) {
	m := metrics.New()
	svc := NewOfferService(&fakeOfferRepo{offers: seededOffers()}, m)
	ctx := context.Background()

	rec, err := svc.Recommend(ctx, 26000)
	require.NoError(t, err)
	require.NotNil(t, rec.Best)
	assert.Equal(t, "SBI", rec.Best.BankName)
	require.Len(t, rec.Eligible, 2)
	assert.Equal(t, "HDFC Bank", rec.Eligible[1].BankName)

	rec, err = svc.Recommend(ctx, 15000)
	require.NoError(t, err)
	assert.True(t, rec.NoMatch)

	_, err = svc.Recommend(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	expected := `
# HELP gcbp_offer_recommendations_total Bank offer recommendations by outcome.
# TYPE gcbp_offer_recommendations_total counter
gcbp_offer_recommendations_total{outcome="matched"} 1
gcbp_offer_recommendations_total{outcome="no_match"} 1
`
	err = testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected), "gcbp_offer_recommendations_total")
	assert.NoError(t, err)
}

func TestOfferService_ForLead(t *testing.T) {
	svc := NewOfferService(&fakeOfferRepo{offers: seededOffers()}, nil)
	l := lead(1, domain.StatusInReview)
	l.Income = 31000

	rec, err := svc.ForLead(context.Background(), &l)
	require.NoError(t, err)
	assert.Len(t, rec.Eligible, 3)
	assert.Equal(t, 31000.0, rec.Income)
}

func TestOfferService_CatalogError(t *testing.T) {
	svc := NewOfferService(&fakeOfferRepo{err: errors.New("connection refused")}, nil)

	_, err := svc.Recommend(context.Background(), 50000)
	assert.ErrorContains(t, err, "load bank offers")
}

func TestNewRecommendationView(t *testing.T) {
	view := NewRecommendationView(domain.Match(15000, seededOffers()))
	assert.True(t, view.NoMatch)
	assert.Equal(t, NoMatchMessage, view.Message)
	assert.Nil(t, view.Best)
	assert.Empty(t, view.Eligible)

	view = NewRecommendationView(domain.Match(30000, seededOffers()))
	require.NotNil(t, view.Best)
	assert.Equal(t, "SBI", view.Best.BankName)
	assert.Empty(t, view.Message)
	assert.Len(t, view.Eligible, 3)
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/logger"
)

// OfferCatalogKey is the Redis key holding the serialized catalog
const OfferCatalogKey = "gcbp:bank_offers:v1"

type offerSource interface {
	List(ctx context.Context) ([]domain.BankOffer, error)
}

type cachedOffer struct {
	ID            uint    `json:"id"`
	BankName      string  `json:"bank_name"`
	ROI           float64 `json:"roi"`
	ProcessingFee float64 `json:"processing_fee"`
	MaxTenure     int     `json:"max_tenure"`
	MinIncome     float64 `json:"min_income"`
}

// CachedBankOfferRepository serves the catalog from Redis and falls back to
// the wrapped source on a miss or any cache error.
type CachedBankOfferRepository struct {
	source offerSource
	rdb    *redis.Client
	ttl    time.Duration
}

// NewCachedBankOfferRepository wraps source with a Redis read-through cache
func NewCachedBankOfferRepository(source offerSource, rdb *redis.Client, ttl time.Duration) *CachedBankOfferRepository {
	return &CachedBankOfferRepository{source: source, rdb: rdb, ttl: ttl}
}

// List returns the catalog in insertion order
func (r *CachedBankOfferRepository) List(ctx context.Context) ([]domain.BankOffer, error) {
	raw, err := r.rdb.Get(ctx, OfferCatalogKey).Bytes()
	switch {
	case err == nil:
		if offers, decodeErr := decodeOffers(raw); decodeErr == nil {
			return offers, nil
		}
		logger.L().Warn("⚠️ Discarding unreadable offer cache entry")
	case !errors.Is(err, redis.Nil):
		logger.L().Warn("⚠️ Offer cache read failed, using database", zap.Error(err))
	}

	offers, err := r.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, encodeErr := encodeOffers(offers); encodeErr == nil {
		if setErr := r.rdb.Set(ctx, OfferCatalogKey, payload, r.ttl).Err(); setErr != nil {
			logger.L().Warn("⚠️ Offer cache write failed", zap.Error(setErr))
		}
	}
	return offers, nil
}

// Invalidate drops the cached catalog
func (r *CachedBankOfferRepository) Invalidate(ctx context.Context) error {
	return r.rdb.Del(ctx, OfferCatalogKey).Err()
}

func encodeOffers(offers []domain.BankOffer) ([]byte, error) {
	out := make([]cachedOffer, len(offers))
	for i, o := range offers {
		out[i] = cachedOffer(o)
	}
	return json.Marshal(out)
}

func decodeOffers(raw []byte) ([]domain.BankOffer, error) {
	var in []cachedOffer
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	offers := make([]domain.BankOffer, len(in))
	for i, o := range in {
		offers[i] = domain.BankOffer(o)
	}
	return offers, nil
}

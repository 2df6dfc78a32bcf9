package services

import (
	"context"
	"time"

	"gcbp-mortgage/internal/core/domain"
)

// LeadRepository is the lead store. Save is a compare-and-swap on
// lead.Version: it fails with domain.ErrLeadConflict when the stored row
// has moved on, and bumps lead.Version on success.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id uint) (*domain.Lead, error)
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, int64, error)
	CountByStatus(ctx context.Context, filter domain.LeadFilter) (map[domain.Status]int64, error)
	SumLoanAmount(ctx context.Context, statuses ...domain.Status) (float64, error)
	Save(ctx context.Context, lead *domain.Lead) error
	CountStale(ctx context.Context, before time.Time) (map[domain.Status]int64, error)
}

// BankOfferRepository loads the offer catalog in insertion order.
type BankOfferRepository interface {
	List(ctx context.Context) ([]domain.BankOffer, error)
}

// LeadTransitionRepository stores the status history.
type LeadTransitionRepository interface {
	Create(ctx context.Context, t *domain.LeadTransition) error
	ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadTransition, error)
}

// LeadDocumentRepository stores documents attached to leads.
type LeadDocumentRepository interface {
	Create(ctx context.Context, doc *domain.LeadDocument) error
	GetByID(ctx context.Context, id uint) (*domain.LeadDocument, error)
	ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadDocument, error)
	Update(ctx context.Context, doc *domain.LeadDocument) error
}

// CommissionRepository stores agent commissions.
type CommissionRepository interface {
	Create(ctx context.Context, c *domain.Commission) error
	GetByID(ctx context.Context, id uint) (*domain.Commission, error)
	List(ctx context.Context, filter domain.CommissionFilter) ([]*domain.Commission, int64, error)
	MarkPaid(ctx context.Context, id uint, at time.Time) error
	SumPending(ctx context.Context) (float64, error)
}

// UserRepository stores users of every role.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
	Update(ctx context.Context, user *domain.User) error
}

// RefreshTokenRepository stores hashed refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

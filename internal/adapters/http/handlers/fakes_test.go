package handlers

import (
	"context"
	"sort"
	"time"

	"gcbp-mortgage/internal/core/domain"
)

type memLeads struct {
	leads    map[uint]domain.Lead
	conflict bool
}

func (m *memLeads) Create(ctx context.Context, l *domain.Lead) error {
	l.ID = uint(len(m.leads) + 1)
	l.Version = 1
	m.leads[l.ID] = *l
	return nil
}

func (m *memLeads) GetByID(ctx context.Context, id uint) (*domain.Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	return &l, nil
}

func (m *memLeads) List(ctx context.Context, f domain.LeadFilter) ([]*domain.Lead, int64, error) {
	var out []*domain.Lead
	for _, l := range m.leads {
		if f.CustomerID != nil && l.CustomerID != *f.CustomerID {
			continue
		}
		if f.AssignedTo != nil && (l.AssignedTo == nil || *l.AssignedTo != *f.AssignedTo) {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, l.Status) {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func hasStatus(list []domain.Status, s domain.Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (m *memLeads) CountByStatus(ctx context.Context, f domain.LeadFilter) (map[domain.Status]int64, error) {
	leads, _, _ := m.List(ctx, f)
	counts := map[domain.Status]int64{}
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts, nil
}

func (m *memLeads) SumLoanAmount(ctx context.Context, statuses ...domain.Status) (float64, error) {
	leads, _, _ := m.List(ctx, domain.LeadFilter{Statuses: statuses})
	var sum float64
	for _, l := range leads {
		sum += l.LoanAmount
	}
	return sum, nil
}

func (m *memLeads) Save(ctx context.Context, l *domain.Lead) error {
	if m.conflict || m.leads[l.ID].Version != l.Version {
		return domain.ErrLeadConflict
	}
	l.Version++
	m.leads[l.ID] = *l
	return nil
}

func (m *memLeads) CountStale(ctx context.Context, before time.Time) (map[domain.Status]int64, error) {
	return map[domain.Status]int64{}, nil
}

type memOffers []domain.BankOffer

func (m memOffers) List(ctx context.Context) ([]domain.BankOffer, error) { return m, nil }

type memTransitions struct{ entries []*domain.LeadTransition }

func (m *memTransitions) Create(ctx context.Context, t *domain.LeadTransition) error {
	t.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, t)
	return nil
}

func (m *memTransitions) ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadTransition, error) {
	var out []*domain.LeadTransition
	for _, t := range m.entries {
		if t.LeadID == leadID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memDocuments struct{ docs []domain.LeadDocument }

func (m *memDocuments) Create(ctx context.Context, d *domain.LeadDocument) error {
	d.ID = uint(len(m.docs) + 1)
	m.docs = append(m.docs, *d)
	return nil
}

func (m *memDocuments) GetByID(ctx context.Context, id uint) (*domain.LeadDocument, error) {
	if id == 0 || int(id) > len(m.docs) {
		return nil, domain.ErrNotFound
	}
	d := m.docs[id-1]
	return &d, nil
}

func (m *memDocuments) ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadDocument, error) {
	out := []*domain.LeadDocument{}
	for i := range m.docs {
		if m.docs[i].LeadID == leadID {
			d := m.docs[i]
			out = append(out, &d)
		}
	}
	return out, nil
}

func (m *memDocuments) Update(ctx context.Context, d *domain.LeadDocument) error {
	m.docs[d.ID-1] = *d
	return nil
}

type memCommissions struct{ items []domain.Commission }

func (m *memCommissions) Create(ctx context.Context, c *domain.Commission) error {
	c.ID = uint(len(m.items) + 1)
	m.items = append(m.items, *c)
	return nil
}

func (m *memCommissions) GetByID(ctx context.Context, id uint) (*domain.Commission, error) {
	if id == 0 || int(id) > len(m.items) {
		return nil, domain.ErrCommissionNotFound
	}
	c := m.items[id-1]
	return &c, nil
}

func (m *memCommissions) List(ctx context.Context, f domain.CommissionFilter) ([]*domain.Commission, int64, error) {
	var out []*domain.Commission
	for i := range m.items {
		if f.Status != nil && m.items[i].Status != *f.Status {
			continue
		}
		c := m.items[i]
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

func (m *memCommissions) MarkPaid(ctx context.Context, id uint, at time.Time) error {
	c := &m.items[id-1]
	if c.Status != domain.CommissionPending {
		return domain.ErrCommissionPaid
	}
	c.Status = domain.CommissionPaid
	c.PaidAt = &at
	return nil
}

func (m *memCommissions) SumPending(ctx context.Context) (float64, error) {
	var sum float64
	for _, c := range m.items {
		if c.Status == domain.CommissionPending {
			sum += c.Amount
		}
	}
	return sum, nil
}

type memUsers struct{ users []domain.User }

func (m *memUsers) Create(ctx context.Context, u *domain.User) error {
	u.ID = uint(len(m.users) + 1)
	m.users = append(m.users, *u)
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 || int(id) > len(m.users) {
		return nil, domain.ErrNotFound
	}
	u := m.users[id-1]
	return &u, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) List(ctx context.Context, f domain.UserFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for i := range m.users {
		if f.Role != nil && m.users[i].Role != *f.Role {
			continue
		}
		u := m.users[i]
		out = append(out, &u)
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	counts := map[domain.Role]int64{}
	for _, u := range m.users {
		counts[u.Role]++
	}
	return counts, nil
}

func (m *memUsers) Update(ctx context.Context, u *domain.User) error {
	m.users[u.ID-1] = *u
	return nil
}

type memTokens struct{ tokens map[string]domain.RefreshToken }

func (m *memTokens) Create(ctx context.Context, t *domain.RefreshToken) error {
	m.tokens[t.TokenHash] = *t
	return nil
}

func (m *memTokens) GetByTokenHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	t, ok := m.tokens[hash]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return &t, nil
}

func (m *memTokens) RevokeByTokenHash(ctx context.Context, hash string) error {
	if _, ok := m.tokens[hash]; !ok {
		return domain.ErrTokenInvalid
	}
	delete(m.tokens, hash)
	return nil
}

func (m *memTokens) RevokeAllByUserID(ctx context.Context, userID uint) error {
	for h, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, h)
		}
	}
	return nil
}

func (m *memTokens) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

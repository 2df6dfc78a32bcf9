package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"gcbp-mortgage/internal/core/domain"
)

type fakeLeadRepo struct {
	mu     sync.Mutex
	leads  map[uint]domain.Lead
	nextID uint

	// beforeSave runs inside Save before the version check.
	beforeSave func(stored *domain.Lead)
	saves      int
}

func newFakeLeadRepo(leads ...domain.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: map[uint]domain.Lead{}}
	for _, l := range leads {
		if l.Version == 0 {
			l.Version = 1
		}
		r.leads[l.ID] = l
		if l.ID > r.nextID {
			r.nextID = l.ID
		}
	}
	return r
}

func (r *fakeLeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	lead.ID = r.nextID
	lead.Version = 1
	r.leads[lead.ID] = *lead
	return nil
}

func (r *fakeLeadRepo) GetByID(ctx context.Context, id uint) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	return &l, nil
}

func (r *fakeLeadRepo) stored(id uint) domain.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leads[id]
}

func matches(l domain.Lead, f domain.LeadFilter) bool {
	if f.CustomerID != nil && l.CustomerID != *f.CustomerID {
		return false
	}
	if f.AssignedTo != nil && (l.AssignedTo == nil || *l.AssignedTo != *f.AssignedTo) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, l.Status) {
		return false
	}
	return true
}

func (r *fakeLeadRepo) List(ctx context.Context, f domain.LeadFilter) ([]*domain.Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Lead
	for _, l := range r.leads {
		if matches(l, f) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if f.Offset > len(out) {
		out = nil
	} else {
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *fakeLeadRepo) CountByStatus(ctx context.Context, f domain.LeadFilter) (map[domain.Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[domain.Status]int64{}
	for _, l := range r.leads {
		if matches(l, f) {
			counts[l.Status]++
		}
	}
	return counts, nil
}

func (r *fakeLeadRepo) SumLoanAmount(ctx context.Context, statuses ...domain.Status) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, l := range r.leads {
		if matches(l, domain.LeadFilter{Statuses: statuses}) {
			sum += l.LoanAmount
		}
	}
	return sum, nil
}

func (r *fakeLeadRepo) Save(ctx context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.leads[lead.ID]
	if !ok {
		return domain.ErrLeadConflict
	}
	if r.beforeSave != nil {
		r.beforeSave(&stored)
		r.leads[lead.ID] = stored
	}
	if stored.Version != lead.Version {
		return domain.ErrLeadConflict
	}
	lead.Version++
	r.leads[lead.ID] = *lead
	r.saves++
	return nil
}

func (r *fakeLeadRepo) CountStale(ctx context.Context, before time.Time) (map[domain.Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[domain.Status]int64{}
	for _, l := range r.leads {
		if !l.Status.IsTerminal() && l.UpdatedAt.Before(before) {
			counts[l.Status]++
		}
	}
	return counts, nil
}

type fakeOfferRepo struct {
	offers []domain.BankOffer
	err    error
}

func (r *fakeOfferRepo) List(ctx context.Context) ([]domain.BankOffer, error) {
	return r.offers, r.err
}

func seededOffers() []domain.BankOffer {
	return []domain.BankOffer{
		{ID: 1, BankName: "HDFC Bank", ROI: 8.5, ProcessingFee: 0.5, MaxTenure: 30, MinIncome: 25000},
		{ID: 2, BankName: "ICICI Bank", ROI: 8.7, ProcessingFee: 0.4, MaxTenure: 25, MinIncome: 30000},
		{ID: 3, BankName: "SBI", ROI: 8.4, ProcessingFee: 0.2, MaxTenure: 30, MinIncome: 20000},
	}
}

type fakeTransitionRepo struct {
	mu      sync.Mutex
	entries []domain.LeadTransition
	err     error
}

func (r *fakeTransitionRepo) Create(ctx context.Context, t *domain.LeadTransition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	t.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *t)
	return nil
}

func (r *fakeTransitionRepo) ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadTransition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.LeadTransition
	for _, e := range r.entries {
		if e.LeadID == leadID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

type fakeDocumentRepo struct {
	docs   map[uint]domain.LeadDocument
	nextID uint
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uint]domain.LeadDocument{}}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *domain.LeadDocument) error {
	r.nextID++
	doc.ID = r.nextID
	r.docs[doc.ID] = *doc
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id uint) (*domain.LeadDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDocumentRepo) ListByLead(ctx context.Context, leadID uint) ([]*domain.LeadDocument, error) {
	var out []*domain.LeadDocument
	for id := uint(1); id <= r.nextID; id++ {
		if d, ok := r.docs[id]; ok && d.LeadID == leadID {
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *domain.LeadDocument) error {
	r.docs[doc.ID] = *doc
	return nil
}

type fakeCommissionRepo struct {
	mu    sync.Mutex
	items map[uint]domain.Commission
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{items: map[uint]domain.Commission{}}
}

func (r *fakeCommissionRepo) Create(ctx context.Context, c *domain.Commission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.LeadID == c.LeadID {
			return domain.ErrDuplicateEntry
		}
	}
	c.ID = uint(len(r.items) + 1)
	r.items[c.ID] = *c
	return nil
}

func (r *fakeCommissionRepo) GetByID(ctx context.Context, id uint) (*domain.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCommissionNotFound
	}
	return &c, nil
}

func (r *fakeCommissionRepo) List(ctx context.Context, f domain.CommissionFilter) ([]*domain.Commission, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Commission
	for id := uint(len(r.items)); id >= 1; id-- {
		c := r.items[id]
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCommissionRepo) MarkPaid(ctx context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.Status != domain.CommissionPending {
		return domain.ErrCommissionPaid
	}
	c.Status = domain.CommissionPaid
	c.PaidAt = &at
	r.items[id] = c
	return nil
}

func (r *fakeCommissionRepo) SumPending(ctx context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, c := range r.items {
		if c.Status == domain.CommissionPending {
			sum += c.Amount
		}
	}
	return sum, nil
}

func (r *fakeCommissionRepo) all() []domain.Commission {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Commission
	for _, c := range r.items {
		out = append(out, c)
	}
	return out
}

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEntry
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context, f domain.UserFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for id := uint(1); id <= r.nextID; id++ {
		u, ok := r.users[id]
		if !ok || (f.Role != nil && u.Role != *f.Role) {
			continue
		}
		out = append(out, &u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	counts := map[domain.Role]int64{}
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = *user
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]domain.RefreshToken
	purged int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]domain.RefreshToken{}}
}

func (r *fakeTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	t.ID = uint(len(r.tokens) + 1)
	r.tokens[t.TokenHash] = *t
	return nil
}

func (r *fakeTokenRepo) GetByTokenHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	t, ok := r.tokens[hash]
	if !ok || t.RevokedAt != nil {
		return nil, domain.ErrTokenInvalid
	}
	return &t, nil
}

func (r *fakeTokenRepo) RevokeByTokenHash(ctx context.Context, hash string) error {
	t, ok := r.tokens[hash]
	if !ok || t.RevokedAt != nil {
		return domain.ErrTokenInvalid
	}
	now := time.Now()
	t.RevokedAt = &now
	r.tokens[hash] = t
	return nil
}

func (r *fakeTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	now := time.Now()
	for h, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			r.tokens[h] = t
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return r.purged, nil
}

// staff users used across tests
const (
	adminID     uint = 1
	salesID     uint = 2
	creditID    uint = 3
	opsID       uint = 4
	customerID  uint = 5
	rmID        uint = 6
	otherCustID uint = 7
)

func staffDirectory() *fakeUserRepo {
	return newFakeUserRepo(
		domain.User{ID: adminID, Email: "admin@gcbp.com", Role: domain.RoleAdmin, IsActive: true},
		domain.User{ID: salesID, Email: "sales@gcbp.com", Role: domain.RoleSalesAgent, IsActive: true},
		domain.User{ID: creditID, Email: "credit@gcbp.com", Role: domain.RoleCreditAnalyst, IsActive: true},
		domain.User{ID: opsID, Email: "ops@gcbp.com", Role: domain.RoleOperations, IsActive: true},
		domain.User{ID: customerID, Email: "customer@example.com", Role: domain.RoleCustomer, IsActive: true},
		domain.User{ID: rmID, Email: "rm@gcbp.com", Role: domain.RoleRelationshipManager, IsActive: true},
		domain.User{ID: otherCustID, Email: "other@example.com", Role: domain.RoleCustomer, IsActive: true},
	)
}

func actorFor(role domain.Role) Actor {
	ids := map[domain.Role]uint{
		domain.RoleAdmin:               adminID,
		domain.RoleSalesAgent:          salesID,
		domain.RoleCreditAnalyst:       creditID,
		domain.RoleOperations:          opsID,
		domain.RoleCustomer:            customerID,
		domain.RoleRelationshipManager: rmID,
	}
	return Actor{UserID: ids[role], Role: role, IP: "10.0.0.1"}
}

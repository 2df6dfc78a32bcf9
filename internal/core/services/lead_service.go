package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/logger"
	"gcbp-mortgage/internal/pkg/metrics"
)

// LeadService runs lead operations: creation, scoped reads, detail edits
// and status transitions with their side effects.
type LeadService struct {
	leads          LeadRepository
	transitions    LeadTransitionRepository
	documents      LeadDocumentRepository
	commissions    CommissionRepository
	users          UserRepository
	lifecycle      *domain.Lifecycle
	metrics        *metrics.Registry
	commissionRate float64
	now            func() time.Time
}

// NewLeadService creates a new lead service
func NewLeadService(
	leads LeadRepository,
	transitions LeadTransitionRepository,
	documents LeadDocumentRepository,
	commissions CommissionRepository,
	users UserRepository,
	m *metrics.Registry,
	commissionRatePercent float64,
) *LeadService {
	return &LeadService{
		leads:          leads,
		transitions:    transitions,
		documents:      documents,
		commissions:    commissions,
		users:          users,
		lifecycle:      domain.DefaultLifecycle,
		metrics:        m,
		commissionRate: commissionRatePercent,
		now:            time.Now,
	}
}

// WithClock replaces the clock used for timestamps. Intended for tests.
func (s *LeadService) WithClock(now func() time.Time) *LeadService {
	s.now = now
	s.lifecycle = domain.NewLifecycle(now)
	return s
}

// CreateLeadInput is a loan application submitted by a customer
type CreateLeadInput struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Phone         string  `json:"phone" validate:"required,max=20"`
	Email         string  `json:"email" validate:"omitempty,email"`
	PAN           string  `json:"pan" validate:"omitempty,max=20"`
	Aadhar        string  `json:"aadhar" validate:"omitempty,max=20"`
	Income        float64 `json:"income" validate:"gte=0"`
	PropertyValue float64 `json:"property_value" validate:"gte=0"`
	LoanAmount    float64 `json:"loan_amount" validate:"gt=0"`
	Tenure        int     `json:"tenure" validate:"gt=0,lte=40"`
}

// ListLeadsInput selects a page of leads
type ListLeadsInput struct {
	Status *domain.Status
	// AssignedToMe narrows a staff listing to leads assigned to the actor.
	AssignedToMe bool
	Offset       int
	Limit        int
}

// Create submits a new application in status NEW. Only customers apply.
func (s *LeadService) Create(ctx context.Context, actor Actor, input CreateLeadInput) (*domain.Lead, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrForbidden
	}

	now := s.now()
	lead := &domain.Lead{
		CustomerID:    actor.UserID,
		Name:          input.Name,
		Phone:         input.Phone,
		Email:         input.Email,
		PAN:           input.PAN,
		Aadhar:        input.Aadhar,
		Income:        input.Income,
		PropertyValue: input.PropertyValue,
		LoanAmount:    input.LoanAmount,
		Tenure:        input.Tenure,
		Status:        domain.StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	s.metrics.LeadCreated()
	logger.L().Info("📝 Lead created", zap.Uint("lead_id", lead.ID), zap.Uint("customer_id", actor.UserID))
	return lead, nil
}

// Get loads one lead the actor may see. Customers get ErrLeadNotFound for
// leads that are not theirs.
func (s *LeadService) Get(ctx context.Context, actor Actor, id uint) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCustomer && lead.CustomerID != actor.UserID {
		return nil, domain.ErrLeadNotFound
	}
	return lead, nil
}

// List returns the page of leads visible to the actor
func (s *LeadService) List(ctx context.Context, actor Actor, input ListLeadsInput) ([]*domain.Lead, int64, error) {
	filter, err := LeadScope(actor)
	if err != nil {
		return nil, 0, err
	}

	if input.Status != nil {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, *input.Status) {
			return []*domain.Lead{}, 0, nil
		}
		filter.Statuses = []domain.Status{*input.Status}
	}
	if input.AssignedToMe && actor.Role.IsStaff() {
		id := actor.UserID
		filter.AssignedTo = &id
	}
	filter.Offset = input.Offset
	filter.Limit = input.Limit

	return s.leads.List(ctx, filter)
}

// LeadScope is the lead filter implied by the actor's role.
func LeadScope(actor Actor) (domain.LeadFilter, error) {
	switch actor.Role {
	case domain.RoleCustomer:
		id := actor.UserID
		return domain.LeadFilter{CustomerID: &id}, nil
	case domain.RoleCreditAnalyst:
		return domain.LeadFilter{Statuses: []domain.Status{domain.StatusInReview, domain.StatusDocsVerified}}, nil
	case domain.RoleSalesAgent, domain.RoleRelationshipManager, domain.RoleOperations, domain.RoleAdmin:
		return domain.LeadFilter{}, nil
	default:
		return domain.LeadFilter{}, domain.ErrUnknownRole
	}
}

// UpdateDetails applies an allow-listed field patch. Status is never part of it.
func (s *LeadService) UpdateDetails(ctx context.Context, actor Actor, id uint, patch domain.LeadDetailsPatch) (*domain.Lead, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	lead, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := canEditDetails(actor, lead, patch); err != nil {
		return nil, err
	}
	if err := s.checkAssignees(ctx, patch); err != nil {
		return nil, err
	}

	updated, changed := domain.ApplyDetails(*lead, patch, s.now())
	if !changed {
		return lead, nil
	}

	if err := s.leads.Save(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrLeadConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("save lead %d: %w", id, err)
	}

	logger.L().Info("✏️ Lead details updated",
		zap.Uint("lead_id", id),
		zap.Uint("user_id", actor.UserID),
		zap.String("role", string(actor.Role)),
	)
	return &updated, nil
}

func canEditDetails(actor Actor, lead *domain.Lead, patch domain.LeadDetailsPatch) error {
	switch actor.Role {
	case domain.RoleCustomer:
		if lead.Status != domain.StatusNew || patch.TouchesAssignment() {
			return domain.ErrForbidden
		}
		return nil
	case domain.RoleSalesAgent, domain.RoleRelationshipManager, domain.RoleAdmin:
		return nil
	case domain.RoleCreditAnalyst, domain.RoleOperations:
		return domain.ErrForbidden
	default:
		return domain.ErrUnknownRole
	}
}

func (s *LeadService) checkAssignees(ctx context.Context, patch domain.LeadDetailsPatch) error {
	if patch.AssignedTo != nil {
		if err := s.requireActive(ctx, *patch.AssignedTo, domain.RoleSalesAgent); err != nil {
			return err
		}
	}
	if patch.RMID != nil {
		if err := s.requireActive(ctx, *patch.RMID, domain.RoleRelationshipManager); err != nil {
			return err
		}
	}
	return nil
}

func (s *LeadService) requireActive(ctx context.Context, userID uint, role domain.Role) error {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("user %d: %w", userID, domain.ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	if !user.IsActive || user.Role != role {
		return fmt.Errorf("user %d is not an active %s: %w", userID, role, domain.ErrInvalidInput)
	}
	return nil
}

// TransitionInput is a status change request
type TransitionInput struct {
	Status domain.Status
	Remark string
}

// Transition moves a lead to a new status. A refused move returns an error
// matching domain.ErrInvalidTransition and leaves the lead untouched.
// A concurrent write returns domain.ErrLeadConflict.
func (s *LeadService) Transition(ctx context.Context, actor Actor, id uint, input TransitionInput) (*domain.Lead, error) {
	lead, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	from := lead.Status
	updated, err := s.lifecycle.ApplyTransition(*lead, input.Status, actor.Role)
	if err != nil {
		s.metrics.Transition(string(from), statusLabel(input.Status), "invalid")
		var te *domain.TransitionError
		if errors.As(err, &te) {
			logger.L().Info("🚫 Transition refused",
				zap.Uint("lead_id", id),
				zap.String("from", string(te.From)),
				zap.String("to", string(te.To)),
				zap.String("role", string(te.Role)),
				zap.String("reason", string(te.Reason)),
			)
		}
		return nil, err
	}

	if err := s.leads.Save(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrLeadConflict) {
			s.metrics.Transition(string(from), string(input.Status), "conflict")
			return nil, err
		}
		return nil, fmt.Errorf("save lead %d: %w", id, err)
	}
	s.metrics.Transition(string(from), string(updated.Status), "ok")

	s.recordTransition(ctx, actor, from, &updated, input.Remark)
	if updated.Status == domain.StatusDisbursed {
		s.recordCommission(ctx, &updated)
	}

	logger.L().Info("🔄 Lead status changed",
		zap.Uint("lead_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(updated.Status)),
		zap.Uint("user_id", actor.UserID),
	)
	return &updated, nil
}

// statusLabel keeps metric label values within the known statuses.
func statusLabel(st domain.Status) string {
	if _, err := domain.ParseStatus(string(st)); err != nil {
		return "unknown"
	}
	return string(st)
}

func (s *LeadService) recordTransition(ctx context.Context, actor Actor, from domain.Status, lead *domain.Lead, remark string) {
	entry := &domain.LeadTransition{
		LeadID:      lead.ID,
		FromStatus:  from,
		ToStatus:    lead.Status,
		PerformedBy: actor.UserID,
		Role:        actor.Role,
		Remark:      remark,
		IPAddress:   actor.IP,
		CreatedAt:   lead.UpdatedAt,
	}
	if err := s.transitions.Create(ctx, entry); err != nil {
		logger.L().Warn("⚠️ Failed to record lead transition", zap.Uint("lead_id", lead.ID), zap.Error(err))
	}
}

func (s *LeadService) recordCommission(ctx context.Context, lead *domain.Lead) {
	if lead.AssignedTo == nil {
		return
	}

	c := &domain.Commission{
		LeadID:    lead.ID,
		AgentID:   *lead.AssignedTo,
		Amount:    domain.CommissionAmount(lead.LoanAmount, s.commissionRate),
		Status:    domain.CommissionPending,
		CreatedAt: s.now(),
	}
	if err := s.commissions.Create(ctx, c); err != nil {
		logger.L().Warn("⚠️ Failed to record commission", zap.Uint("lead_id", lead.ID), zap.Error(err))
		return
	}
	logger.L().Info("💰 Commission recorded",
		zap.Uint("lead_id", lead.ID),
		zap.Uint("agent_id", c.AgentID),
		zap.Float64("amount", c.Amount),
	)
}

// History returns the status history of a lead. Staff only.
func (s *LeadService) History(ctx context.Context, actor Actor, id uint) ([]*domain.LeadTransition, error) {
	if !actor.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if _, err := s.leads.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.transitions.ListByLead(ctx, id)
}

// AddDocumentInput attaches a document reference to a lead
type AddDocumentInput struct {
	Type string `json:"type" validate:"required,max=50"`
	URL  string `json:"url" validate:"required,url,max=500"`
}

// ReviewDocumentInput sets a document's verification status
type ReviewDocumentInput struct {
	Status domain.DocumentStatus
	Remark string
}

// ListDocuments lists the documents of a lead the actor may see
func (s *LeadService) ListDocuments(ctx context.Context, actor Actor, leadID uint) ([]*domain.LeadDocument, error) {
	if _, err := s.Get(ctx, actor, leadID); err != nil {
		return nil, err
	}
	return s.documents.ListByLead(ctx, leadID)
}

// AddDocument attaches a PENDING document to a lead
func (s *LeadService) AddDocument(ctx context.Context, actor Actor, leadID uint, input AddDocumentInput) (*domain.LeadDocument, error) {
	if _, err := s.Get(ctx, actor, leadID); err != nil {
		return nil, err
	}

	now := s.now()
	doc := &domain.LeadDocument{
		LeadID:    leadID,
		Type:      input.Type,
		URL:       input.URL,
		Status:    domain.DocumentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// ReviewDocument records a staff verdict on a document. It never changes
// the lead status.
func (s *LeadService) ReviewDocument(ctx context.Context, actor Actor, leadID, docID uint, input ReviewDocumentInput) (*domain.LeadDocument, error) {
	if !actor.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}

	doc, err := s.documents.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.LeadID != leadID {
		return nil, domain.ErrNotFound
	}

	now := s.now()
	checker := actor.UserID
	doc.Status = input.Status
	doc.Remark = input.Remark
	doc.CheckedBy = &checker
	doc.CheckedAt = &now
	doc.UpdatedAt = now

	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update document %d: %w", docID, err)
	}
	return doc, nil
}

func containsStatus(list []domain.Status, s domain.Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

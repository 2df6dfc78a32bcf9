package services

import (
	"context"
	"fmt"

	"gcbp-mortgage/internal/core/domain"
)

// DashboardKind names the dashboard a role sees
type DashboardKind string

const (
	DashboardCustomer DashboardKind = "customer"
	DashboardPipeline DashboardKind = "pipeline"
	DashboardCredit   DashboardKind = "credit"
	DashboardAdmin    DashboardKind = "admin"
)

const (
	recentLeadsLimit = 10
	creditQueueLimit = 50
	customerLimit    = 50
)

// DashboardKindFor maps a role onto its dashboard
func DashboardKindFor(role domain.Role) (DashboardKind, error) {
	switch role {
	case domain.RoleCustomer:
		return DashboardCustomer, nil
	case domain.RoleSalesAgent, domain.RoleRelationshipManager, domain.RoleOperations:
		return DashboardPipeline, nil
	case domain.RoleCreditAnalyst:
		return DashboardCredit, nil
	case domain.RoleAdmin:
		return DashboardAdmin, nil
	default:
		return "", domain.ErrUnknownRole
	}
}

// DashboardService builds role specific dashboards
type DashboardService struct {
	leads       LeadRepository
	users       UserRepository
	commissions CommissionRepository
	offers      *OfferService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(leads LeadRepository, users UserRepository, commissions CommissionRepository, offers *OfferService) *DashboardService {
	return &DashboardService{leads: leads, users: users, commissions: commissions, offers: offers}
}

// Dashboard is the payload of GET /dashboard. Exactly one section is set.
type Dashboard struct {
	Kind     DashboardKind      `json:"kind"`
	Customer *CustomerDashboard `json:"customer,omitempty"`
	Pipeline *PipelineDashboard `json:"pipeline,omitempty"`
	Credit   *CreditDashboard   `json:"credit,omitempty"`
	Admin    *AdminDashboard    `json:"admin,omitempty"`
}

// CustomerDashboard shows a customer's own applications
type CustomerDashboard struct {
	Leads        []LeadSummary    `json:"leads"`
	StatusCounts map[string]int64 `json:"status_counts"`
}

// PipelineDashboard shows the whole funnel
type PipelineDashboard struct {
	StatusCounts map[string]int64 `json:"status_counts"`
	TotalLeads   int64            `json:"total_leads"`
	RecentLeads  []LeadSummary    `json:"recent_leads"`
}

// CreditQueueItem is a lead awaiting credit review with its offer match
type CreditQueueItem struct {
	Lead           LeadSummary        `json:"lead"`
	Recommendation RecommendationView `json:"recommendation"`
}

// CreditDashboard shows the credit review queue
type CreditDashboard struct {
	Queue []CreditQueueItem `json:"queue"`
	Total int64             `json:"total"`
}

// AdminDashboard extends the pipeline with users and money totals
type AdminDashboard struct {
	PipelineDashboard
	UsersByRole        map[string]int64 `json:"users_by_role"`
	TotalRequested     float64          `json:"total_requested"`
	TotalDisbursed     float64          `json:"total_disbursed"`
	PendingCommissions float64          `json:"pending_commissions"`
}

// Get builds the dashboard for the actor's role
func (s *DashboardService) Get(ctx context.Context, actor Actor) (*Dashboard, error) {
	kind, err := DashboardKindFor(actor.Role)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Kind: kind}
	switch kind {
	case DashboardCustomer:
		d.Customer, err = s.customer(ctx, actor.UserID)
	case DashboardPipeline:
		d.Pipeline, err = s.pipeline(ctx)
	case DashboardCredit:
		d.Credit, err = s.credit(ctx)
	case DashboardAdmin:
		d.Admin, err = s.admin(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s dashboard: %w", kind, err)
	}
	return d, nil
}

func (s *DashboardService) customer(ctx context.Context, customerID uint) (*CustomerDashboard, error) {
	filter := domain.LeadFilter{CustomerID: &customerID, Limit: customerLimit}
	leads, _, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.leads.CountByStatus(ctx, domain.LeadFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	return &CustomerDashboard{Leads: summaries(leads), StatusCounts: fillStatuses(counts)}, nil
}

func (s *DashboardService) pipeline(ctx context.Context) (*PipelineDashboard, error) {
	counts, err := s.leads.CountByStatus(ctx, domain.LeadFilter{})
	if err != nil {
		return nil, err
	}
	recent, total, err := s.leads.List(ctx, domain.LeadFilter{Limit: recentLeadsLimit})
	if err != nil {
		return nil, err
	}
	return &PipelineDashboard{
		StatusCounts: fillStatuses(counts),
		TotalLeads:   total,
		RecentLeads:  summaries(recent),
	}, nil
}

func (s *DashboardService) credit(ctx context.Context) (*CreditDashboard, error) {
	scope, err := LeadScope(Actor{Role: domain.RoleCreditAnalyst})
	if err != nil {
		return nil, err
	}
	scope.Limit = creditQueueLimit

	leads, total, err := s.leads.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	catalog, err := s.offers.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	queue := make([]CreditQueueItem, len(leads))
	for i, l := range leads {
		queue[i] = CreditQueueItem{
			Lead:           NewLeadSummary(l),
			Recommendation: NewRecommendationView(domain.Match(l.Income, catalog)),
		}
	}
	return &CreditDashboard{Queue: queue, Total: total}, nil
}

func (s *DashboardService) admin(ctx context.Context) (*AdminDashboard, error) {
	pipeline, err := s.pipeline(ctx)
	if err != nil {
		return nil, err
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	users := make(map[string]int64, len(domain.AllRoles()))
	for _, r := range domain.AllRoles() {
		users[string(r)] = byRole[r]
	}

	requested, err := s.leads.SumLoanAmount(ctx)
	if err != nil {
		return nil, err
	}
	disbursed, err := s.leads.SumLoanAmount(ctx, domain.StatusDisbursed)
	if err != nil {
		return nil, err
	}
	pending, err := s.commissions.SumPending(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		PipelineDashboard:  *pipeline,
		UsersByRole:        users,
		TotalRequested:     requested,
		TotalDisbursed:     disbursed,
		PendingCommissions: pending,
	}, nil
}

func fillStatuses(counts map[domain.Status]int64) map[string]int64 {
	out := make(map[string]int64, len(domain.AllStatuses()))
	for _, st := range domain.AllStatuses() {
		out[string(st)] = counts[st]
	}
	return out
}

func summaries(leads []*domain.Lead) []LeadSummary {
	out := make([]LeadSummary, len(leads))
	for i, l := range leads {
		out[i] = NewLeadSummary(l)
	}
	return out
}

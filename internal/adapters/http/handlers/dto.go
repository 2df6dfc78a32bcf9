package handlers

import (
	"time"

	"gcbp-mortgage/internal/core/domain"
)

// UserResponse is the public shape of a user
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func newUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}
	return out
}

// LeadResponse is the full shape of a lead
type LeadResponse struct {
	ID            uint      `json:"id"`
	CustomerID    uint      `json:"customer_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	PAN           string    `json:"pan"`
	Aadhar        string    `json:"aadhar"`
	Income        float64   `json:"income"`
	PropertyValue float64   `json:"property_value"`
	LoanAmount    float64   `json:"loan_amount"`
	Tenure        int       `json:"tenure"`
	Status        string    `json:"status"`
	AssignedTo    *uint     `json:"assigned_to"`
	RMID          *uint     `json:"rm_id"`
	Version       uint      `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:            l.ID,
		CustomerID:    l.CustomerID,
		Name:          l.Name,
		Phone:         l.Phone,
		Email:         l.Email,
		PAN:           l.PAN,
		Aadhar:        l.Aadhar,
		Income:        l.Income,
		PropertyValue: l.PropertyValue,
		LoanAmount:    l.LoanAmount,
		Tenure:        l.Tenure,
		Status:        string(l.Status),
		AssignedTo:    l.AssignedTo,
		RMID:          l.RMID,
		Version:       l.Version,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func newLeadResponses(leads []*domain.Lead) []LeadResponse {
	out := make([]LeadResponse, len(leads))
	for i, l := range leads {
		out[i] = newLeadResponse(l)
	}
	return out
}

// TransitionResponse is one status history entry
type TransitionResponse struct {
	ID          uint      `json:"id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	PerformedBy uint      `json:"performed_by"`
	Role        string    `json:"role"`
	Remark      string    `json:"remark"`
	IPAddress   string    `json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTransitionResponses(entries []*domain.LeadTransition) []TransitionResponse {
	out := make([]TransitionResponse, len(entries))
	for i, e := range entries {
		out[i] = TransitionResponse{
			ID:          e.ID,
			FromStatus:  string(e.FromStatus),
			ToStatus:    string(e.ToStatus),
			PerformedBy: e.PerformedBy,
			Role:        string(e.Role),
			Remark:      e.Remark,
			IPAddress:   e.IPAddress,
			CreatedAt:   e.CreatedAt,
		}
	}
	return out
}

// DocumentResponse is a lead document
type DocumentResponse struct {
	ID        uint       `json:"id"`
	LeadID    uint       `json:"lead_id"`
	Type      string     `json:"type"`
	URL       string     `json:"url"`
	Status    string     `json:"status"`
	CheckedBy *uint      `json:"checked_by"`
	CheckedAt *time.Time `json:"checked_at"`
	Remark    string     `json:"remark"`
	CreatedAt time.Time  `json:"created_at"`
}

func newDocumentResponse(d *domain.LeadDocument) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		LeadID:    d.LeadID,
		Type:      d.Type,
		URL:       d.URL,
		Status:    string(d.Status),
		CheckedBy: d.CheckedBy,
		CheckedAt: d.CheckedAt,
		Remark:    d.Remark,
		CreatedAt: d.CreatedAt,
	}
}

func newDocumentResponses(docs []*domain.LeadDocument) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = newDocumentResponse(d)
	}
	return out
}

// CommissionResponse is an agent commission
type CommissionResponse struct {
	ID        uint       `json:"id"`
	LeadID    uint       `json:"lead_id"`
	AgentID   uint       `json:"agent_id"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func newCommissionResponse(c *domain.Commission) CommissionResponse {
	return CommissionResponse{
		ID:        c.ID,
		LeadID:    c.LeadID,
		AgentID:   c.AgentID,
		Amount:    c.Amount,
		Status:    string(c.Status),
		PaidAt:    c.PaidAt,
		CreatedAt: c.CreatedAt,
	}
}

package services

import (
	"time"

	"gcbp-mortgage/internal/core/domain"
)

// NoMatchMessage is shown when no offer accepts the applicant's income
const NoMatchMessage = "No matching banks found for this income level"

// LeadSummary is the compact lead shape used in lists and dashboards
type LeadSummary struct {
	ID         uint      `json:"id"`
	CustomerID uint      `json:"customer_id"`
	Name       string    `json:"name"`
	Income     float64   `json:"income"`
	LoanAmount float64   `json:"loan_amount"`
	Tenure     int       `json:"tenure"`
	Status     string    `json:"status"`
	AssignedTo *uint     `json:"assigned_to"`
	RMID       *uint     `json:"rm_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLeadSummary builds a LeadSummary
func NewLeadSummary(l *domain.Lead) LeadSummary {
	return LeadSummary{
		ID:         l.ID,
		CustomerID: l.CustomerID,
		Name:       l.Name,
		Income:     l.Income,
		LoanAmount: l.LoanAmount,
		Tenure:     l.Tenure,
		Status:     string(l.Status),
		AssignedTo: l.AssignedTo,
		RMID:       l.RMID,
		UpdatedAt:  l.UpdatedAt,
	}
}

// OfferView is a bank offer as rendered to clients
type OfferView struct {
	ID            uint    `json:"id"`
	BankName      string  `json:"bank_name"`
	ROI           float64 `json:"roi"`
	ProcessingFee float64 `json:"processing_fee"`
	MaxTenure     int     `json:"max_tenure"`
	MinIncome     float64 `json:"min_income"`
}

// NewOfferViews converts a catalog slice
func NewOfferViews(offers []domain.BankOffer) []OfferView {
	views := make([]OfferView, len(offers))
	for i, o := range offers {
		views[i] = OfferView(o)
	}
	return views
}

// RecommendationView is a recommendation as rendered to clients. A no-match
// result is a normal answer with NoMatch set and Message filled in.
type RecommendationView struct {
	Income   float64     `json:"income"`
	Eligible []OfferView `json:"eligible"`
	Best     *OfferView  `json:"best"`
	NoMatch  bool        `json:"no_match"`
	Message  string      `json:"message,omitempty"`
}

// NewRecommendationView builds a RecommendationView
func NewRecommendationView(r domain.Recommendation) RecommendationView {
	view := RecommendationView{
		Income:   r.Income,
		Eligible: NewOfferViews(r.Eligible),
		NoMatch:  r.NoMatch,
	}
	if r.Best != nil {
		best := OfferView(*r.Best)
		view.Best = &best
	}
	if r.NoMatch {
		view.Message = NoMatchMessage
	}
	return view
}

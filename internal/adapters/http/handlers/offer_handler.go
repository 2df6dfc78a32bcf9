package handlers

import (
	"errors"
	"strconv"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OfferHandler serves the bank offer catalog and the EMI calculator
type OfferHandler struct {
	offerService *services.OfferService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// ListOffers returns the full catalog
// @Summary List bank offers
// @Description All partner bank offers in catalog order
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /offers [get]
func (h *OfferHandler) ListOffers(c *fiber.Ctx) error {
	offers, err := h.offerService.Catalog(c.Context())
	if err != nil {
		return internalError(c, err, "Failed to load bank offers")
	}

	return response.Success(c, "Bank offers retrieved successfully", fiber.Map{
		"offers": services.NewOfferViews(offers),
	})
}

// EligibleOffers ranks the offers open to a monthly income
// @Summary Eligible bank offers
// @Description Offers whose minimum income is met, cheapest rate first. No match is a normal answer with no_match=true.
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Param income query number true "Monthly income"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /offers/eligible [get]
func (h *OfferHandler) EligibleOffers(c *fiber.Ctx) error {
	income, err := strconv.ParseFloat(c.Query("income"), 64)
	if err != nil {
		return response.BadRequest(c, "income must be a number")
	}

	rec, err := h.offerService.Recommend(c.Context(), income)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "income must not be negative")
		}
		return internalError(c, err, "Failed to load bank offers")
	}

	view := services.NewRecommendationView(rec)
	return response.Success(c, recommendationMessage(view), view)
}

func recommendationMessage(view services.RecommendationView) string {
	if view.NoMatch {
		return view.Message
	}
	return "Eligible offers retrieved successfully"
}

// EMIResponse is a monthly installment breakdown
type EMIResponse struct {
	Principal     float64 `json:"principal"`
	ROI           float64 `json:"roi"`
	TenureYears   int     `json:"tenure_years"`
	Months        int     `json:"months"`
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

// CalculateEMI computes the monthly installment of a loan
// @Summary EMI calculator
// @Tags Offers
// @Produce json
// @Param amount query number true "Principal"
// @Param roi query number true "Annual interest rate in percent"
// @Param tenure query int true "Tenure in years"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /emi [get]
func (h *OfferHandler) CalculateEMI(c *fiber.Ctx) error {
	amount, errAmount := strconv.ParseFloat(c.Query("amount"), 64)
	roi, errROI := strconv.ParseFloat(c.Query("roi"), 64)
	tenure, errTenure := strconv.Atoi(c.Query("tenure"))
	if errAmount != nil || errROI != nil || errTenure != nil {
		return response.BadRequest(c, "amount, roi and tenure are required numbers")
	}

	res, err := domain.CalculateEMI(amount, roi, tenure)
	if err != nil {
		return response.BadRequest(c, "amount, roi or tenure out of range")
	}

	emi, _ := res.EMI.Float64()
	total, _ := res.TotalPayment.Float64()
	interest, _ := res.TotalInterest.Float64()
	return response.Success(c, "EMI calculated successfully", EMIResponse{
		Principal:     amount,
		ROI:           roi,
		TenureYears:   tenure,
		Months:        res.Months,
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: interest,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/pagination"
	"gcbp-mortgage/internal/pkg/response"
	"gcbp-mortgage/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// LeadHandler handles loan application endpoints
type LeadHandler struct {
	leadService  *services.LeadService
	offerService *services.OfferService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *services.LeadService, offerService *services.OfferService) *LeadHandler {
	return &LeadHandler{
		leadService:  leadService,
		offerService: offerService,
	}
}

// UpdateLeadRequest lists the editable lead fields. Any other key is rejected.
type UpdateLeadRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Phone         *string  `json:"phone" validate:"omitempty,max=20"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	PAN           *string  `json:"pan" validate:"omitempty,max=20"`
	Aadhar        *string  `json:"aadhar" validate:"omitempty,max=20"`
	Income        *float64 `json:"income"`
	PropertyValue *float64 `json:"property_value"`
	LoanAmount    *float64 `json:"loan_amount"`
	Tenure        *int     `json:"tenure" validate:"omitempty,lte=40"`
	AssignedTo    *uint    `json:"assigned_to"`
	RMID          *uint    `json:"rm_id"`
}

func (r UpdateLeadRequest) patch() domain.LeadDetailsPatch {
	return domain.LeadDetailsPatch{
		Name:          r.Name,
		Phone:         r.Phone,
		Email:         r.Email,
		PAN:           r.PAN,
		Aadhar:        r.Aadhar,
		Income:        r.Income,
		PropertyValue: r.PropertyValue,
		LoanAmount:    r.LoanAmount,
		Tenure:        r.Tenure,
		AssignedTo:    r.AssignedTo,
		RMID:          r.RMID,
	}
}

// TransitionRequest represents a status change request body
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
	Remark string `json:"remark" validate:"max=500"`
}

// ReviewDocumentRequest represents a document verdict
type ReviewDocumentRequest struct {
	Status string `json:"status" validate:"required"`
	Remark string `json:"remark" validate:"max=500"`
}

// ListLeads lists the leads visible to the caller
// @Summary List leads
// @Description Customers see their own leads, credit analysts the review queue, other staff everything
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param mine query bool false "Staff only: leads assigned to the caller"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	input := services.ListLeadsInput{
		AssignedToMe: c.QueryBool("mine"),
		Offset:       params.Offset,
		Limit:        params.Limit,
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return response.BadRequest(c, "Invalid status filter")
		}
		input.Status = &status
	}

	leads, total, err := h.leadService.List(c.Context(), actor, input)
	if err != nil {
		return leadError(c, err, "Failed to list leads")
	}

	return response.Success(c, "Leads retrieved successfully",
		pagination.NewResponse(newLeadResponses(leads), params, total))
}

// CreateLead submits a loan application
// @Summary Create lead
// @Description Submit a new loan application in status NEW (customers only)
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLeadInput true "Application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.CreateLeadInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	lead, err := h.leadService.Create(c.Context(), actor, req)
	if err != nil {
		return leadError(c, err, "Failed to create lead")
	}

	return response.Created(c, "Lead created successfully", fiber.Map{
		"lead": newLeadResponse(lead),
	})
}

// GetLead returns one lead
// @Summary Get lead
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	lead, err := h.leadService.Get(c.Context(), actor, id)
	if err != nil {
		return leadError(c, err, "Failed to get lead")
	}

	return response.Success(c, "Lead retrieved successfully", fiber.Map{
		"lead": newLeadResponse(lead),
	})
}

// UpdateLead edits lead details
// @Summary Update lead details
// @Description Partial update of applicant and assignment fields. status and unknown keys are rejected.
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param body body UpdateLeadRequest true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leads/{id} [patch]
func (h *LeadHandler) UpdateLead(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if bad := rejectedKeys(raw); len(bad) > 0 {
		return response.BadRequest(c, fmt.Sprintf("%s: %v", domain.ErrFieldNotEditable, bad))
	}

	var req UpdateLeadRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	patch := req.patch()
	if patch.IsEmpty() {
		return response.BadRequest(c, "No fields to update")
	}

	lead, err := h.leadService.UpdateDetails(c.Context(), actor, id, patch)
	if err != nil {
		return leadError(c, err, "Failed to update lead")
	}

	return response.Success(c, "Lead updated successfully", fiber.Map{
		"lead": newLeadResponse(lead),
	})
}

func rejectedKeys(raw map[string]json.RawMessage) []string {
	var bad []string
	for key := range raw {
		if !domain.EditableLeadFields[key] {
			bad = append(bad, key)
		}
	}
	sort.Strings(bad)
	return bad
}

// UpdateStatus moves a lead through its lifecycle
// @Summary Change lead status
// @Description Applies one lifecycle transition. A refused move answers 422 with the allowed targets.
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param body body TransitionRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /leads/{id}/status [put]
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	lead, err := h.leadService.Transition(c.Context(), actor, id, services.TransitionInput{
		Status: domain.Status(req.Status),
		Remark: req.Remark,
	})
	if err != nil {
		return leadError(c, err, "Failed to change lead status")
	}

	return response.Success(c, "Lead status updated successfully", fiber.Map{
		"lead": newLeadResponse(lead),
	})
}

// GetHistory returns the status history of a lead
// @Summary Lead status history
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leads/{id}/history [get]
func (h *LeadHandler) GetHistory(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	history, err := h.leadService.History(c.Context(), actor, id)
	if err != nil {
		return leadError(c, err, "Failed to get lead history")
	}

	return response.Success(c, "Lead history retrieved successfully", fiber.Map{
		"history": newTransitionResponses(history),
	})
}

// GetLeadOffers recommends bank offers for the lead's income
// @Summary Offers for a lead
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leads/{id}/offers [get]
func (h *LeadHandler) GetLeadOffers(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	lead, err := h.leadService.Get(c.Context(), actor, id)
	if err != nil {
		return leadError(c, err, "Failed to get lead")
	}

	rec, err := h.offerService.ForLead(c.Context(), lead)
	if err != nil {
		return leadError(c, err, "Failed to load bank offers")
	}

	view := services.NewRecommendationView(rec)
	return response.Success(c, recommendationMessage(view), view)
}

// ListDocuments lists a lead's documents
// @Summary List lead documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leads/{id}/documents [get]
func (h *LeadHandler) ListDocuments(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	docs, err := h.leadService.ListDocuments(c.Context(), actor, id)
	if err != nil {
		return leadError(c, err, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved successfully", fiber.Map{
		"documents": newDocumentResponses(docs),
	})
}

// AddDocument attaches a document to a lead
// @Summary Add lead document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param body body services.AddDocumentInput true "Document reference"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leads/{id}/documents [post]
func (h *LeadHandler) AddDocument(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	var req services.AddDocumentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	doc, err := h.leadService.AddDocument(c.Context(), actor, id, req)
	if err != nil {
		return leadError(c, err, "Failed to add document")
	}

	return response.Created(c, "Document added successfully", fiber.Map{
		"document": newDocumentResponse(doc),
	})
}

// ReviewDocument sets a document's verification status
// @Summary Review lead document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param doc_id path int true "Document ID"
// @Param body body ReviewDocumentRequest true "Verdict"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leads/{id}/documents/{doc_id} [put]
func (h *LeadHandler) ReviewDocument(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	leadID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}
	docID, err := parseID(c, "doc_id")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	var req ReviewDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	status, err := domain.ParseDocumentStatus(req.Status)
	if err != nil {
		return response.BadRequest(c, "Invalid document status")
	}

	doc, err := h.leadService.ReviewDocument(c.Context(), actor, leadID, docID, services.ReviewDocumentInput{
		Status: status,
		Remark: req.Remark,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return leadError(c, err, "Failed to review document")
	}

	return response.Success(c, "Document reviewed successfully", fiber.Map{
		"document": newDocumentResponse(doc),
	})
}

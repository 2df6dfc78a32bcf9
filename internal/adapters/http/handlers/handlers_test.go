package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/metrics"
	"gcbp-mortgage/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminID uint = iota + 1
	salesID
	creditID
	opsID
	customerID
	rmID
	otherCustomerID
)

var created = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	app         *fiber.App
	leads       *memLeads
	commissions *memCommissions
	users       *memUsers
	tokens      *memTokens
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func testLead(id, customer uint, status domain.Status, income float64) domain.Lead {
	return domain.Lead{
		ID: id, CustomerID: customer, Name: "Alice", Phone: "9800000000",
		Income: income, LoanAmount: 4500000, Tenure: 20, Status: status,
		Version: 1, CreatedAt: created, UpdatedAt: created,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := password.HashWithCost("admin123", bcrypt.MinCost)
	require.NoError(t, err)

	env := &testEnv{
		leads: &memLeads{leads: map[uint]domain.Lead{
			1: testLead(1, customerID, domain.StatusNew, 26000),
			2: testLead(2, otherCustomerID, domain.StatusInReview, 26000),
			3: testLead(3, customerID, domain.StatusDisbursed, 26000),
			4: testLead(4, customerID, domain.StatusInReview, 15000),
		}},
		commissions: &memCommissions{items: []domain.Commission{
			{ID: 1, LeadID: 3, AgentID: salesID, Amount: 22500, Status: domain.CommissionPending, CreatedAt: created},
		}},
		users: &memUsers{users: []domain.User{
			{ID: adminID, Email: "admin@gcbp.com", Name: "Admin", Password: hash, Role: domain.RoleAdmin, IsActive: true},
			{ID: salesID, Email: "sales@gcbp.com", Role: domain.RoleSalesAgent, IsActive: true},
			{ID: creditID, Email: "credit@gcbp.com", Role: domain.RoleCreditAnalyst, IsActive: true},
			{ID: opsID, Email: "ops@gcbp.com", Role: domain.RoleOperations, IsActive: true},
			{ID: customerID, Email: "customer@example.com", Role: domain.RoleCustomer, IsActive: true},
			{ID: rmID, Email: "rm@gcbp.com", Role: domain.RoleRelationshipManager, IsActive: true},
			{ID: otherCustomerID, Email: "other@example.com", Role: domain.RoleCustomer, IsActive: true},
		}},
		tokens: &memTokens{tokens: map[string]domain.RefreshToken{}},
	}

	offers := memOffers{
		{ID: 1, BankName: "HDFC Bank", ROI: 8.5, ProcessingFee: 0.5, MaxTenure: 30, MinIncome: 25000},
		{ID: 2, BankName: "ICICI Bank", ROI: 8.7, ProcessingFee: 0.4, MaxTenure: 25, MinIncome: 30000},
		{ID: 3, BankName: "SBI", ROI: 8.4, ProcessingFee: 0.2, MaxTenure: 30, MinIncome: 20000},
	}

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "s", RefreshSecret: "r", AccessTokenMins: 15, RefreshTokenDays: 7},
		Cookie:  config.CookieConfig{SameSite: "Lax"},
	}
	m := metrics.New()

	offerSvc := services.NewOfferService(offers, m)
	leadSvc := services.NewLeadService(env.leads, &memTransitions{}, &memDocuments{}, env.commissions, env.users, m, 0.5)
	authSvc := services.NewAuthService(env.users, env.tokens, cfg.JWT).WithHashCost(bcrypt.MinCost)
	userSvc := services.NewUserService(env.users).WithHashCost(bcrypt.MinCost)

	leadH := NewLeadHandler(leadSvc, offerSvc)
	offerH := NewOfferHandler(offerSvc)
	authH := NewAuthHandler(authSvc, userSvc, cfg)
	userH := NewUserHandler(userSvc)
	dashH := NewDashboardHandler(services.NewDashboardService(env.leads, env.users, env.commissions, offerSvc))
	commH := NewCommissionHandler(services.NewCommissionService(env.commissions))

	app := fiber.New()
	app.Post("/auth/login", authH.Login)
	app.Get("/emi", offerH.CalculateEMI)

	api := app.Group("", impersonate)
	api.Get("/auth/me", authH.Me)
	api.Get("/offers", offerH.ListOffers)
	api.Get("/offers/eligible", offerH.EligibleOffers)
	api.Get("/leads", leadH.ListLeads)
	api.Post("/leads", leadH.CreateLead)
	api.Get("/leads/:id", leadH.GetLead)
	api.Patch("/leads/:id", leadH.UpdateLead)
	api.Put("/leads/:id/status", leadH.UpdateStatus)
	api.Get("/leads/:id/history", leadH.GetHistory)
	api.Get("/leads/:id/offers", leadH.GetLeadOffers)
	api.Get("/leads/:id/documents", leadH.ListDocuments)
	api.Post("/leads/:id/documents", leadH.AddDocument)
	api.Put("/leads/:id/documents/:doc_id", leadH.ReviewDocument)
	api.Get("/dashboard", dashH.GetDashboard)
	api.Get("/users", userH.ListUsers)
	api.Post("/users", userH.CreateUser)
	api.Patch("/users/:id", userH.UpdateUser)
	api.Get("/commissions", commH.ListCommissions)
	api.Put("/commissions/:id/pay", commH.PayCommission)

	env.app = app
	return env
}

// impersonate stands in for AuthMiddleware: X-User-ID and X-Role set the caller.
func impersonate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Get("X-User-ID"), 10, 32)
	if err != nil {
		return c.Next()
	}
	c.Locals("userID", uint(id))
	c.Locals("role", domain.Role(c.Get("X-Role")))
	return c.Next()
}

func callerFor(role domain.Role) uint {
	switch role {
	case domain.RoleAdmin:
		return adminID
	case domain.RoleSalesAgent:
		return salesID
	case domain.RoleCreditAnalyst:
		return creditID
	case domain.RoleOperations:
		return opsID
	case domain.RoleRelationshipManager:
		return rmID
	default:
		return customerID
	}
}

func (e *testEnv) do(t *testing.T, role domain.Role, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-User-ID", strconv.Itoa(int(callerFor(role))))
		req.Header.Set("X-Role", string(role))
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

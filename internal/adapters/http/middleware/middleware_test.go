package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/jwt"
	"gcbp-mortgage/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", RefreshSecret: "test-refresh", AccessTokenMins: 15, RefreshTokenDays: 7},
	}
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken(7, "user@gcbp.com", "User", role, "test-secret", 15)
	require.NoError(t, err)
	return tok
}

func newAuthApp(cfg *config.Config, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware(cfg)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userID"),
			"role":    c.Locals("role"),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestAuthMiddleware(t *testing.T) {
	app := newAuthApp(testConfig())

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no token", func(r *http.Request) {}, fiber.StatusUnauthorized},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, fiber.StatusUnauthorized},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, "SALES_AGENT")) }, fiber.StatusOK},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: token(t, "CUSTOMER")})
		}, fiber.StatusOK},
		{"unknown role", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, "ROOT")) }, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_SetsLocals(t *testing.T) {
	app := newAuthApp(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "CREDIT_ANALYST"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decode(t, resp.Body)
	assert.Equal(t, float64(7), body["user_id"])
	assert.Equal(t, "CREDIT_ANALYST", body["role"])
}

func TestRoleMiddleware(t *testing.T) {
	app := newAuthApp(testConfig(), AdminOnly())

	for role, want := range map[domain.Role]int{
		domain.RoleAdmin:      fiber.StatusOK,
		domain.RoleSalesAgent: fiber.StatusForbidden,
		domain.RoleCustomer:   fiber.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, string(role)))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

func TestStaffOnly(t *testing.T) {
	app := newAuthApp(testConfig(), StaffOnly())

	for _, role := range domain.AllRoles() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, string(role)))
		resp, err := app.Test(req)
		require.NoError(t, err)

		want := fiber.StatusOK
		if role == domain.RoleCustomer {
			want = fiber.StatusForbidden
		}
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/public", CacheControl(time.Hour), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/private", PrivateCacheHeaders(5*time.Minute), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", CacheControl(time.Hour), func(c *fiber.Ctx) error { return response.NotFound(c, "nope") })
	app.Post("/auth", NoCacheHeaders(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public", nil))
	require.NoError(t, err)
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, "private, max-age=300", resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/auth", nil))
	require.NoError(t, err)
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db exploded") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal Server Error", body["error"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", decode(t, resp.Body)["error"])
}

func TestSetup_AddsRequestID(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	Setup(app, testConfig())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

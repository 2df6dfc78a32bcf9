package handlers

import (
	"context"
	"time"

	"gcbp-mortgage/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Checker reports the health of one dependency
type Checker func(ctx context.Context) error

// HealthHandler handles health check endpoints
type HealthHandler struct {
	mode   string
	checks map[string]Checker
}

// NewHealthHandler creates a new health handler. checks maps a dependency
// name onto its probe.
func NewHealthHandler(mode string, checks map[string]Checker) *HealthHandler {
	return &HealthHandler{mode: mode, checks: checks}
}

// DatabaseChecker probes the global database connection
func DatabaseChecker() Checker {
	return func(ctx context.Context) error {
		return config.HealthCheck(ctx)
	}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 GCBP Mortgage API v1.0 is running",
		"mode":    h.mode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, database and cache health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := fiber.Map{"api": "healthy"}
	status, code := "ok", fiber.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			checks[name] = "unhealthy"
			status, code = "degraded", fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "healthy"
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1 [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "GCBP Mortgage API v1.0",
		"version": "1.0.0",
	})
}

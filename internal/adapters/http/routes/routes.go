package routes

import (
	"context"
	"time"

	"gcbp-mortgage/internal/adapters/http/handlers"
	"gcbp-mortgage/internal/adapters/http/middleware"
	"gcbp-mortgage/internal/adapters/persistence/repositories"
	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/logger"
	"gcbp-mortgage/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries the process-wide resources routes are built from.
// Redis is optional: a nil client serves the offer catalog straight from the database.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Metrics *metrics.Registry
	Config  *config.Config
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Deps) {
	cfg := deps.Config
	db := deps.DB

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	transitionRepo := repositories.NewLeadTransitionRepository(db)
	documentRepo := repositories.NewLeadDocumentRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)

	var offerRepo services.BankOfferRepository = repositories.NewBankOfferRepository(db)
	if deps.Redis != nil {
		cached := repositories.NewCachedBankOfferRepository(offerRepo, deps.Redis, cfg.Redis.OfferTTL)
		// The catalog may have been reseeded since the entry was written.
		if err := cached.Invalidate(context.Background()); err != nil {
			logger.L().Warn("⚠️ Failed to drop stale offer cache", zap.Error(err))
		}
		offerRepo = cached
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT)
	userService := services.NewUserService(userRepo)
	offerService := services.NewOfferService(offerRepo, deps.Metrics)
	leadService := services.NewLeadService(
		leadRepo,
		transitionRepo,
		documentRepo,
		commissionRepo,
		userRepo,
		deps.Metrics,
		cfg.Business.CommissionRatePercent,
	)
	dashboardService := services.NewDashboardService(leadRepo, userRepo, commissionRepo, offerService)
	commissionService := services.NewCommissionService(commissionRepo)

	// Initialize handlers
	checks := map[string]handlers.Checker{"database": handlers.DatabaseChecker()}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, checks)
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	offerHandler := handlers.NewOfferHandler(offerService)
	leadHandler := handlers.NewLeadHandler(leadService, offerService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	commissionHandler := handlers.NewCommissionHandler(commissionService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)
	apiV1.Get("/emi", middleware.CacheControl(time.Hour), offerHandler.CalculateEMI)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)

	authed := middleware.AuthMiddleware(cfg)

	setupOfferRoutes(apiV1.Group("/offers", authed), offerHandler)
	setupLeadRoutes(apiV1.Group("/leads", authed), leadHandler)
	apiV1.Get("/dashboard", authed, dashboardHandler.GetDashboard)
	setupUserRoutes(apiV1.Group("/users", authed, middleware.AdminOnly()), userHandler)
	setupCommissionRoutes(apiV1.Group("/commissions", authed, middleware.AdminOnly()), commissionHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes (5 req/min/IP)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
	router.Put("/password", middleware.AuthMiddleware(cfg), handler.ChangePassword)
}

// setupOfferRoutes configures the read-only catalog
func setupOfferRoutes(router fiber.Router, handler *handlers.OfferHandler) {
	router.Use(middleware.PrivateCacheHeaders(5 * time.Minute))
	router.Get("/", handler.ListOffers)
	router.Get("/eligible", handler.EligibleOffers)
}

// setupLeadRoutes configures lead routes. Per-lead access is enforced by LeadService.
func setupLeadRoutes(router fiber.Router, handler *handlers.LeadHandler) {
	router.Get("/", handler.ListLeads)
	router.Post("/", middleware.CustomerOnly(), handler.CreateLead)
	router.Get("/:id", handler.GetLead)
	router.Patch("/:id", handler.UpdateLead)
	router.Put("/:id/status", handler.UpdateStatus)
	router.Get("/:id/offers", handler.GetLeadOffers)

	router.Get("/:id/documents", handler.ListDocuments)
	router.Post("/:id/documents", handler.AddDocument)

	// Staff only
	router.Get("/:id/history", middleware.StaffOnly(), handler.GetHistory)
	router.Put("/:id/documents/:doc_id", middleware.StaffOnly(), handler.ReviewDocument)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Get("/:id", handler.GetUser)
	router.Patch("/:id", handler.UpdateUser)
}

// setupCommissionRoutes configures commission routes (Admin only)
func setupCommissionRoutes(router fiber.Router, handler *handlers.CommissionHandler) {
	router.Get("/", handler.ListCommissions)
	router.Put("/:id/pay", handler.PayCommission)
}

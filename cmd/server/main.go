package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gcbp-mortgage/internal/adapters/http/middleware"
	"gcbp-mortgage/internal/adapters/http/routes"
	"gcbp-mortgage/internal/adapters/persistence/models"
	"gcbp-mortgage/internal/adapters/persistence/repositories"
	"gcbp-mortgage/internal/config"
	"gcbp-mortgage/internal/core/services"
	"gcbp-mortgage/internal/pkg/logger"
	"gcbp-mortgage/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "gcbp-mortgage/docs" // Swagger docs
)

// @title GCBP Mortgage API
// @version 1.0
// @description Mortgage lead management: lead lifecycle, bank offer matching, commissions.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@gcbp.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("❌ Failed to load configuration", zap.Error(err))
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	logger.Set(log)
	defer logger.Sync()

	if !cfg.EnvFileLoaded {
		log.Info("ℹ️ No .env file found, using environment variables")
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("❌ Failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("❌ Failed to auto migrate", zap.Error(err))
	}
	log.Info("✅ Database migration completed")

	if err := config.NewSeeder(db).Run(); err != nil {
		log.Warn("⚠️ Failed to seed database", zap.Error(err))
	}

	// Offer cache is optional
	rdb, err := config.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		log.Warn("⚠️ Redis unavailable, offer cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// Scheduled jobs: refresh token cleanup and stale lead report
	cronService := services.NewCronService(
		repositories.NewRefreshTokenRepository(db),
		repositories.NewLeadRepository(db),
		cfg.Cron,
		cfg.Business.StaleLeadDays,
	)
	if err := cronService.Start(); err != nil {
		log.Fatal("❌ Failed to start cron service", zap.Error(err))
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GCBP Mortgage API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, routes.Deps{
		DB:      db,
		Redis:   rdb,
		Metrics: metrics.New(),
		Config:  cfg,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Info("🚀 Server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logger.L().Error("❌ Error during shutdown", zap.Error(err))
	}
	logger.L().Info("✅ Server stopped gracefully")
}

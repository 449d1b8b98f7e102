package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Violation catalog
	kinds := catalog.Defaults
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFromFile(cfg.CatalogPath)
		if err != nil {
			slog.Error("failed to load violation catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
		kinds = loaded
	}
	if err := catalog.Seed(database.DB, kinds); err != nil {
		slog.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}
	registry := catalog.NewRegistry()
	if err := registry.Reload(database.DB); err != nil {
		slog.Error("catalog load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("violation catalog loaded", "kinds", registry.Len())

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, cfg.LogLevel),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Evidence storage
	var store storage.ObjectStore
	if cfg.S3AccessKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		minioStore, err := storage.NewMinioStore(ctx, cfg)
		cancel()
		if err != nil {
			slog.Error("object storage connection failed", "error", err)
			os.Exit(1)
		}
		store = minioStore
	} else {
		slog.Warn("S3_ACCESS_KEY not set, evidence is kept in memory and lost on restart")
		store = storage.NewMemoryStore()
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	profileService := services.NewProfileService(database.DB)
	summaryService := services.NewSummaryService(database.DB, cfg)
	reportService := services.NewReportService(database.DB, cfg, summaryService)
	evidenceService := services.NewEvidenceService(store, cfg)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    int(cfg.EvidenceMaxBytes) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${respHeader:X-Request-ID}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(registry),
		Legal:    handlers.NewLegalHandler(cfg),
		Catalog:  handlers.NewCatalogHandler(registry),
		Profile:  handlers.NewProfileHandler(profileService),
		Report:   handlers.NewReportHandler(reportService, summaryService),
		Evidence: handlers.NewEvidenceHandler(evidenceService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

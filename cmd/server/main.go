package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/internal/app/controller"
	"github.com/bancoriental/unipersonal-backend/internal/app/repository"
	"github.com/bancoriental/unipersonal-backend/internal/app/service"
	"github.com/bancoriental/unipersonal-backend/internal/db"
	"github.com/bancoriental/unipersonal-backend/internal/middleware"
	"github.com/bancoriental/unipersonal-backend/internal/mongodb"
	"github.com/bancoriental/unipersonal-backend/internal/registry"
	"github.com/bancoriental/unipersonal-backend/internal/router"
	"github.com/bancoriental/unipersonal-backend/internal/scheduler"
	"github.com/bancoriental/unipersonal-backend/internal/storage"
	"github.com/bancoriental/unipersonal-backend/pkg/idcodec"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/bancoriental/unipersonal-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting unipersonal onboarding backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize core store
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize document store
	if err := mongodb.Initialize(&cfg.Mongo); err != nil {
		logger.Fatal("Failed to initialize document store", err)
	}
	defer func() {
		if err := mongodb.Close(); err != nil {
			logger.Error("Failed to close document store connection", err)
		}
	}()

	// Initialize Redis (mail blacklist)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	codec, err := idcodec.New(cfg.Onboarding.IDCodecKey)
	if err != nil {
		logger.Fatal("Failed to initialize id codec", err)
	}

	// Initialize repositories
	onboardingRepo := repository.NewOnboardingRepository(db.GetDB())
	locationRepo := repository.NewLocationRepository(db.GetDB())
	auditRepo := repository.NewAuditRepository(db.GetDB())
	passwordRepo := repository.NewPasswordRepository(mongodb.GetDatabase())

	// External collaborators
	dgiClient := registry.NewHTTPClient(&cfg.DGI)
	blacklist := redis.NewMailBlacklist(redis.GetClient())

	var archive service.Archive
	if cfg.S3.Bucket != "" {
		archive = storage.NewNotificationArchive(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
		)
	}

	// Initialize services
	onboardingService := service.NewOnboardingService(
		onboardingRepo,
		auditRepo,
		passwordRepo,
		dgiClient,
		blacklist,
		codec,
		cfg.Onboarding,
	)
	mailService := service.NewMailService(cfg.SMTP, auditRepo, archive)

	// Initialize controllers
	onboardingController := controller.NewOnboardingController(onboardingService)
	notificationController := controller.NewNotificationController(mailService)
	locationController := controller.NewLocationController(locationRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the password purge scheduler
	passwordScheduler := scheduler.NewPasswordScheduler(passwordRepo)
	if err := passwordScheduler.Start(); err != nil {
		logger.Fatal("Failed to start password scheduler", err)
	}
	defer passwordScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		onboardingController,
		notificationController,
		locationController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

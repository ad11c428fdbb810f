package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vendra/vendra-backend/config"
	"github.com/vendra/vendra-backend/internal/app/controller"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/internal/app/service"
	"github.com/vendra/vendra-backend/internal/db"
	"github.com/vendra/vendra-backend/internal/events"
	"github.com/vendra/vendra-backend/internal/middleware"
	"github.com/vendra/vendra-backend/internal/router"
	"github.com/vendra/vendra-backend/internal/scheduler"
	"github.com/vendra/vendra-backend/internal/storage"
	"github.com/vendra/vendra-backend/pkg/logger"
	"github.com/vendra/vendra-backend/pkg/redis"
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

	logger.Info("Starting VENDRA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it reads skip the aggregate cache
	var productCache service.ProductCache
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, running without product cache", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
		productCache = service.NewRedisProductCache(redis.GetClient(), cfg.Redis.CacheTTL)
	}

	// Media storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Catalog event stream
	hub := events.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	mediaRepo := repository.NewProductMediaRepository(db.GetDB())
	optionRepo := repository.NewProductOptionRepository(db.GetDB())
	variantRepo := repository.NewProductVariantRepository(db.GetDB())
	collectionRepo := repository.NewCollectionRepository(db.GetDB())
	taxonomyRepo := repository.NewTaxonomyRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	addressService := service.NewAddressService(addressRepo)
	productService := service.NewProductService(
		db.GetDB(),
		productRepo,
		mediaRepo,
		optionRepo,
		variantRepo,
		collectionRepo,
		s3Storage,
		productCache,
		hub,
	)
	collectionService := service.NewCollectionService(collectionRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo)
	exportService := service.NewExportService(productRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService, exportService)
	catalogController := controller.NewCatalogController(productService, collectionService, taxonomyService)
	collectionController := controller.NewCollectionController(collectionService)
	taxonomyController := controller.NewTaxonomyController(taxonomyService)
	addressController := controller.NewAddressController(addressService)
	uploadController := controller.NewUploadController(s3Storage)
	eventsController := controller.NewEventsController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Background sweep for storage objects no media row references
	mediaCleanup := scheduler.NewMediaCleanupScheduler(
		mediaRepo,
		s3Storage,
		cfg.Cleanup.MediaSweepSchedule,
		cfg.Cleanup.MediaMinAge,
	)
	if err := mediaCleanup.Start(); err != nil {
		logger.Error("Failed to start media cleanup scheduler", err)
	}
	defer mediaCleanup.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		catalogController,
		collectionController,
		taxonomyController,
		addressController,
		uploadController,
		eventsController,
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

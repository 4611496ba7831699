package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/marketloop/marketloop-backend/config"
	"github.com/marketloop/marketloop-backend/internal/app/controller"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/internal/app/service"
	"github.com/marketloop/marketloop-backend/internal/db"
	"github.com/marketloop/marketloop-backend/internal/middleware"
	"github.com/marketloop/marketloop-backend/internal/router"
	"github.com/marketloop/marketloop-backend/internal/scheduler"
	"github.com/marketloop/marketloop-backend/internal/storage"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"github.com/marketloop/marketloop-backend/pkg/payment/razorpay"
	"github.com/marketloop/marketloop-backend/pkg/redis"
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

	logger.Info("Starting Marketloop Backend Server", map[string]interface{}{
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

	// Redis backs session revocation; the server still works without it,
	// logout just stops invalidating tokens early.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Failed to connect to Redis, session revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Initialize payment client
	paymentClient, err := razorpay.NewClient(razorpay.Config{
		KeyID:     cfg.Payment.Razorpay.KeyID,
		KeySecret: cfg.Payment.Razorpay.KeySecret,
		BaseURL:   cfg.Payment.Razorpay.BaseURL,
		Currency:  cfg.Payment.Razorpay.Currency,
	})
	if err != nil {
		logger.Fatal("Failed to initialize payment client", err)
	}

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.Session.JWTSecret,
		cfg.Session.TokenExpiry,
	)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, cartRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, db.GetDB())
	paymentService := service.NewPaymentService(paymentClient, cartRepo, orderService)

	// Initialize controllers
	authController := controller.NewAuthController(
		authService,
		cfg.Session.CookieName,
		cfg.Session.CookieSecure,
		cfg.Session.TokenExpiry,
	)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	paymentController := controller.NewPaymentController(paymentService)
	uploadController := controller.NewUploadController(s3Storage)
	exportController := controller.NewExportController(productService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Session.JWTSecret, cfg.Session.CookieName)

	// Start background cart cleanup
	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo, cfg.Cart.StaleItemAge)
	if err := cartCleanup.Start(); err != nil {
		logger.Fatal("Failed to start cart cleanup scheduler", err)
	}

	// Setup router
	r := router.NewRouter(
		authController,
		categoryController,
		productController,
		cartController,
		orderController,
		paymentController,
		uploadController,
		exportController,
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
	cartCleanup.Stop()
	logger.Info("Server stopped successfully")
}

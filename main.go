package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"takeout-api/config"
	"takeout-api/events"
	"takeout-api/handlers"
	"takeout-api/logger"
	"takeout-api/routes"
	"takeout-api/services"
	"takeout-api/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Environment: cfg.Environment,
	})
	appLogger.Info("Starting takeout API", "environment", cfg.Environment, "db_driver", cfg.DBDriver)

	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := config.OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		appLogger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Database connected and migrated")

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			appLogger.Error("Failed to connect to message broker", "error", err)
			os.Exit(1)
		}
		publisher = amqpPub
		appLogger.Info("Publishing events", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	var uploadHandler *handlers.UploadHandler
	if cfg.S3.Enabled() {
		uploader, err := storage.NewS3Uploader(context.Background(), storage.Options{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			Bucket:        cfg.S3.Bucket,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		if err != nil {
			appLogger.Error("Failed to configure object storage", "error", err)
			os.Exit(1)
		}
		uploadHandler = handlers.NewUploadHandler(uploader, appLogger)
	} else {
		appLogger.Warn("S3 storage not configured, image uploads disabled")
	}

	if err := handlers.RegisterValidators(); err != nil {
		appLogger.Error("Failed to register validators", "error", err)
		os.Exit(1)
	}

	// Services
	categoryService := services.NewCategoryService(db, appLogger)
	dishService := services.NewDishService(db, publisher, appLogger)
	comboService := services.NewComboService(db, publisher, appLogger)
	cartService := services.NewCartService(db, appLogger)
	orderService := services.NewOrderService(db, publisher, appLogger)
	reportService := services.NewReportService(services.NewGormReportStore(db, appLogger), cfg.ReportLocation, appLogger)

	r := gin.New()
	r.Use(gin.Recovery(), appLogger.GinMiddleware())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{logger.RequestIDHeader}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": "Takeout Catalog & Ordering API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, routes.Handlers{
		JWTSecret: cfg.JWTSecret,
		Auth:      handlers.NewAuthHandler(db, cfg.JWTSecret, cfg.JWTTTL, appLogger),
		Admin:     handlers.NewAdminHandler(db),
		Catalog:   handlers.NewCatalogHandler(categoryService, dishService, comboService),
		Cart:      handlers.NewCartHandler(cartService),
		Orders:    handlers.NewOrderHandler(orderService),
		Reports:   handlers.NewReportHandler(reportService, cfg.ReportLocation),
		Upload:    uploadHandler,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

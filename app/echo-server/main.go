package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cartAffinity/app/echo-server/router"
	"cartAffinity/business/affinity"
	"cartAffinity/business/attribution"
	"cartAffinity/business/tracking"
	"cartAffinity/internal/middleware"
	psqlRepo "cartAffinity/internal/repository/postgres"
	redisRepo "cartAffinity/internal/repository/redis"
	"cartAffinity/internal/rest"
	"cartAffinity/pkg/config"
	"cartAffinity/pkg/database"
	redisdb "cartAffinity/pkg/database/redis"
	"cartAffinity/pkg/logger"
	"cartAffinity/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Cart Affinity Engine", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Counter store: Redis when configured, otherwise the counters table.
	var counters tracking.CounterStore
	if cfg.Redis.RedisHost != "" {
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() { _ = redisdb.CloseRedisClient(client) }()

		counters = redisRepo.NewCounterRepository(client)
		logger.Info("Redis connected successfully")
	} else {
		counters = psqlRepo.NewCounterRepository(db)
	}

	metrics.Init()

	// Init repo
	purchaseRepo := psqlRepo.NewPurchaseEventRepository(db)
	trackingRepo := psqlRepo.NewTrackingEventRepository(db)
	similarityRepo := psqlRepo.NewSimilarityRepository(db)
	attributionRepo := psqlRepo.NewAttributionRepository(db)
	bundleRepo := psqlRepo.NewBundleRepository(db)
	settingsRepo := psqlRepo.NewShopSettingsRepository(db)

	// Init service
	affinityCfg := affinity.DefaultConfig()
	affinityCfg.WindowDays = cfg.Engine.PurchaseWindowDays
	affinityCfg.HalfLifeDays = float64(cfg.Engine.HalfLifeDays)

	attributionCfg := attribution.DefaultConfig()
	attributionCfg.LookbackDays = cfg.Engine.AttributionLookback
	attributionCfg.ClickWindowMinutes = cfg.Engine.ClickWindowMinutes
	attributionCfg.TrackingEventLimit = cfg.Engine.TrackingEventLimit

	affinityService := affinity.NewAffinityService(purchaseRepo, similarityRepo, affinityCfg)
	attributionService := attribution.NewAttributionService(
		trackingRepo, attributionRepo, similarityRepo, bundleRepo, settingsRepo, attributionCfg)
	trackingService := tracking.NewTrackingService(trackingRepo, counters)

	// Init handler
	webhookHandler := rest.NewOrderWebhookHandler(attributionService)
	trackingHandler := rest.NewTrackingHandler(trackingService)
	affinityHandler := rest.NewAffinityHandler(affinityService)
	jobsHandler := rest.NewJobsHandler(affinityService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetWebhookRoutes(api, webhookHandler)
	router.SetTrackingRoutes(api, trackingHandler)
	router.SetAffinityRoutes(api, affinityHandler)
	router.SetJobRoutes(api, jobsHandler, authRequired, adminOnly)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

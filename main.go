// @title Stock Alert API
// @version 1.0
// @description Quote proxy, watch-list session and drawdown alerts.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/epeers/stockalert/config"
	"github.com/epeers/stockalert/docs"
	"github.com/epeers/stockalert/internal/cache"
	"github.com/epeers/stockalert/internal/database"
	"github.com/epeers/stockalert/internal/handlers"
	"github.com/epeers/stockalert/internal/middleware"
	"github.com/epeers/stockalert/internal/repository"
	"github.com/epeers/stockalert/internal/services"
	"github.com/epeers/stockalert/internal/yahoo"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	started := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Create context for initialization
	ctx := context.Background()

	// Settings live in PostgreSQL when configured, otherwise in memory
	var store services.SettingsStore
	if cfg.PGURL != "" {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		settingsRepo := repository.NewSettingsRepository(db.Pool)
		if err := settingsRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare settings table: %v", err)
		}
		store = settingsRepo
	} else {
		log.Info("PG_URL not set, settings are kept in memory")
		store = repository.NewMemorySettingsRepository()
	}

	// Initialize quote client, cache and services
	yahooClient := yahoo.NewClient(cfg.QuoteBaseURL, cfg.FetchTimeout, cfg.UpstreamRPS)
	memCache := cache.NewMemoryCache(cfg.CacheTTL)

	quoteSvc := services.NewQuoteService(yahooClient, memCache, cfg.FetchTimeout)
	session := services.NewSession(ctx, quoteSvc, store)
	chartSvc := services.NewChartService()
	refresher := services.NewRefresher(session, cfg.RefreshSchedule, 2*cfg.FetchTimeout)

	// Initialize handlers
	stockHandler := handlers.NewStockHandler(quoteSvc)
	healthHandler := handlers.NewHealthHandler(started)
	dashboardHandler := handlers.NewDashboardHandler(session, chartSvc, refresher)

	// Setup Gin router
	if cfg.LogLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/stock/:symbol", stockHandler.GetStock)

		api.GET("/settings", dashboardHandler.GetSettings)
		api.PUT("/settings", dashboardHandler.UpdateSettings)
		api.GET("/watchlist", dashboardHandler.GetWatchlist)
		api.POST("/watchlist", dashboardHandler.AddSymbol)
		api.DELETE("/watchlist/:symbol", dashboardHandler.RemoveSymbol)
		api.POST("/refresh", dashboardHandler.Refresh)
		api.GET("/alerts", dashboardHandler.GetAlerts)
		api.POST("/alerts/confirm", dashboardHandler.ConfirmAlerts)
		api.GET("/chart", dashboardHandler.GetChart)
	}

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Dashboard assets
	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
		router.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	}

	// Periodic refresh; the first load runs straight away
	if err := refresher.Start(); err != nil {
		log.Fatalf("Failed to start refresher: %v", err)
	}
	go func() {
		if _, err := refresher.RunNow(ctx); err != nil {
			log.Warnf("Initial refresh skipped: %v", err)
		}
	}()

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests and a running refresh 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	refresher.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// Command api is the SafeFlight backend server: account auth, flight-detail
// storage, the country risk map, and the daily flight-safety email notifier.
//
// Usage:
//
//	safeflight-api
//	API_PORT=5005 safeflight-api

// @title SafeFlight API
// @version 1.0.0
// @description Disease-risk map backend: email/password accounts with JWT, flight-detail storage, country risk classification from live case counts, and a daily "is it safe to fly" email notifier.
// @host localhost:5005
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/kahayonz/safeflight/internal/api"
	"github.com/kahayonz/safeflight/internal/auth"
	"github.com/kahayonz/safeflight/internal/cache"
	"github.com/kahayonz/safeflight/internal/config"
	"github.com/kahayonz/safeflight/internal/db"
	"github.com/kahayonz/safeflight/internal/external"
	"github.com/kahayonz/safeflight/internal/notify"
	"github.com/kahayonz/safeflight/internal/risk"
	"github.com/kahayonz/safeflight/internal/store"

	_ "github.com/kahayonz/safeflight/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	accounts := store.NewPostgres(pool.Pool)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiry)

	// Risk cache fed by the disease.sh case-count feed, kept warm for the
	// map endpoint.
	caseClient := external.NewCaseClient(cfg.CaseAPIURL, cfg.CaseAPITimeout)
	riskCache := risk.NewCache(caseClient, cfg.RiskCacheTTL, logger)
	go riskCache.StartRefreshLoop(ctx, cfg.RiskCacheTTL)

	// Initialize response cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Daily flight-safety notifier
	loc, err := time.LoadLocation(cfg.NotifyTimeZone)
	if err != nil {
		logger.Error("Invalid notify timezone", "timezone", cfg.NotifyTimeZone, "error", err)
		os.Exit(1)
	}
	at, _ := config.ParseClock(cfg.NotifyAt) // validated in config.Load
	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	pipeline := notify.NewPipeline(accounts, riskCache, mailer, logger)
	scheduler := notify.NewScheduler(pipeline, loc, at, logger)
	go scheduler.Start(ctx)

	// Manual trigger outside production: one synchronous pass at startup so
	// a demo run sends today's notifications immediately.
	if !cfg.IsProduction() {
		summary := scheduler.RunNow(ctx)
		logger.Info("Manual scan-and-send pass finished", "summary", summary.String())
	}

	// Health news proxy (nil when no API key is configured)
	news := external.NewNewsClient(cfg.NewsAPIKey)
	if news == nil {
		logger.Info("Health news proxy disabled (no NEWS_API_KEY)")
	}

	// Create router
	router := api.NewRouter(accounts, tokens, riskCache, appCache, news, pool, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting SafeFlight API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/config"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/geoip"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/handler"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/mail"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/middleware"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/retention"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/service"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/store"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio - Personal portfolio backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_PATH               SQLite database path (default: ./data/portfolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ALLOWED_ORIGINS       Comma-separated CORS origins (default: http://localhost:5173)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENABLE_NOTIFICATIONS  Send email for new contact submissions (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SMTP_HOST             SMTP relay host for notifications\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_NOTIFY_EMAIL          Notification recipient address\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_GEOIP_DB_PATH         GeoLite2 country database for visitor breakdowns (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_RETENTION_DAYS        Days to keep raw page views, 0 keeps forever (default: 0)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Println(info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations before accepting any traffic
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	contacts := store.NewContactStore(db)
	analytics := store.NewAnalyticsStore(db)

	// Email notifications for new contact submissions (optional)
	var notifier service.Notifier
	if cfg.NotificationsEnabled() {
		notifier = mail.NewSMTPNotifier(mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			To:       cfg.NotifyEmail,
		})
		slog.Info("email notifications enabled", "host", cfg.SMTPHost, "recipient", cfg.NotifyEmail)
	}

	// GeoIP lookups for the visitor country breakdown (optional)
	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err, "path", cfg.GeoIPDBPath)
		} else {
			slog.Info("geoip enabled", "path", cfg.GeoIPDBPath)
			defer func() { _ = geo.Close() }()
		}
	}

	contactService := service.NewContactService(contacts, notifier, logger)
	analyticsService := service.NewAnalyticsService(analytics, contacts, geo, logger)

	// Page view retention sweep (optional)
	if cfg.RetentionEnabled() {
		sweeper := retention.New(analytics, cfg.RetentionDays, logger)
		if err := sweeper.Start(); err != nil {
			return fmt.Errorf("starting retention sweeper: %w", err)
		}
		defer sweeper.Stop()
	}

	contactHandler := handler.NewContactHandler(contactService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	healthHandler := handler.NewHealthHandler(db)

	r := handler.NewRouter(contactHandler, analyticsHandler, healthHandler, handler.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		ContactLimiter: middleware.NewRateLimiter(cfg.ContactRateRPS, cfg.ContactRateBurst),
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

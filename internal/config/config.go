// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PORTFOLIO_DB_PATH" envDefault:"./data/portfolio.db"`
	ServerHost string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`

	// CORS configuration for the browser UI
	AllowedOrigins []string `env:"PORTFOLIO_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Email notification configuration. Notifications are sent for new
	// contact submissions only when enabled and the SMTP host plus a
	// recipient are present.
	EnableNotifications bool   `env:"PORTFOLIO_ENABLE_NOTIFICATIONS" envDefault:"false"`
	SMTPHost            string `env:"PORTFOLIO_SMTP_HOST"`
	SMTPPort            int    `env:"PORTFOLIO_SMTP_PORT" envDefault:"587"`
	SMTPUser            string `env:"PORTFOLIO_SMTP_USER"`
	SMTPPassword        string `env:"PORTFOLIO_SMTP_PASSWORD"`
	SMTPFrom            string `env:"PORTFOLIO_SMTP_FROM"`
	NotifyEmail         string `env:"PORTFOLIO_NOTIFY_EMAIL"`

	// GeoIP configuration
	GeoIPDBPath string `env:"PORTFOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// RetentionDays is how long raw page view rows are kept. 0 keeps them forever.
	RetentionDays int `env:"PORTFOLIO_RETENTION_DAYS" envDefault:"0"`

	// Rate limiting for contact form submissions, per client IP.
	ContactRateRPS   float64 `env:"PORTFOLIO_CONTACT_RATE_RPS" envDefault:"0.5"`
	ContactRateBurst int     `env:"PORTFOLIO_CONTACT_RATE_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// NotificationsEnabled returns true if submission emails should be sent.
func (c Config) NotificationsEnabled() bool {
	return c.EnableNotifications && c.SMTPHost != "" && c.NotifyEmail != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// RetentionEnabled returns true if old page views should be swept.
func (c Config) RetentionEnabled() bool {
	return c.RetentionDays > 0
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("PORTFOLIO_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.RetentionDays < 0 {
		return nil, fmt.Errorf("PORTFOLIO_RETENTION_DAYS must not be negative, got %d", cfg.RetentionDays)
	}
	if cfg.EnableNotifications && (cfg.SMTPHost == "" || cfg.NotifyEmail == "") {
		return nil, fmt.Errorf("PORTFOLIO_ENABLE_NOTIFICATIONS requires PORTFOLIO_SMTP_HOST and PORTFOLIO_NOTIFY_EMAIL to be set")
	}

	return cfg, nil
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "./data/portfolio.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment should be true by default")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.NotificationsEnabled() {
		t.Error("notifications should be off by default")
	}
	if cfg.RetentionEnabled() {
		t.Error("retention should be off by default")
	}
	if cfg.GeoIPEnabled() {
		t.Error("geoip should be off by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_SERVER_PORT", "9090")
	t.Setenv("PORTFOLIO_ENV", "production")
	t.Setenv("PORTFOLIO_ALLOWED_ORIGINS", "https://a.com,https://b.com")
	t.Setenv("PORTFOLIO_RETENTION_DAYS", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment should be false in production")
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.RetentionEnabled() || cfg.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want 90", cfg.RetentionDays)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORTFOLIO_SERVER_PORT", "99999")
	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestLoadNegativeRetention(t *testing.T) {
	t.Setenv("PORTFOLIO_RETENTION_DAYS", "-1")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative retention")
	}
}

func TestLoadNotificationsRequireHostAndRecipient(t *testing.T) {
	t.Setenv("PORTFOLIO_ENABLE_NOTIFICATIONS", "true")
	if _, err := Load(); err == nil {
		t.Error("expected error when notifications enabled without SMTP host")
	}

	t.Setenv("PORTFOLIO_SMTP_HOST", "smtp.example.com")
	t.Setenv("PORTFOLIO_NOTIFY_EMAIL", "owner@example.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.NotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
}

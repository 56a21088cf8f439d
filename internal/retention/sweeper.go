// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

// Package retention removes raw page view rows past the configured horizon.
package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/store"
)

// sweepSchedule runs the sweep nightly, off-peak.
const sweepSchedule = "0 3 * * *"

// Sweeper periodically deletes page views older than the retention horizon.
type Sweeper struct {
	analytics *store.AnalyticsStore
	cron      *cron.Cron
	logger    *slog.Logger
	days      int
}

// New creates a sweeper keeping the last days of page views.
func New(analytics *store.AnalyticsStore, days int, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		analytics: analytics,
		cron:      cron.New(),
		logger:    logger,
		days:      days,
	}
}

// Start schedules the nightly sweep and runs one immediately to catch up.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(sweepSchedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Error("retention sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("retention sweeper started", "days", s.days)

	go func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Error("initial retention sweep failed", "error", err)
		}
	}()

	return nil
}

// Stop gracefully stops the sweeper, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("retention sweeper stopped")
}

// Sweep deletes page views older than the horizon.
func (s *Sweeper) Sweep(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -s.days)
	deleted, err := s.analytics.DeleteViewsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("retention sweep complete", "deleted", deleted, "cutoff", cutoff.Format("2006-01-02"))
	}
	return nil
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/model"
)

// AnalyticsStore runs queries against the page_views and project_views tables.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates an AnalyticsStore over the given database handle.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// InsertPageView appends one page view row. page_views is append-only:
// rows are never updated and only removed by the retention sweep.
func (s *AnalyticsStore) InsertPageView(ctx context.Context, view model.PageView) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_views (page, referrer, user_agent, ip_address, viewed_at)
		VALUES (?, ?, ?, ?, ?)
	`, view.Page, view.Referrer, view.UserAgent, view.IPAddress, formatTime(view.ViewedAt))
	if err != nil {
		return fmt.Errorf("inserting page view: %w", err)
	}
	return nil
}

// RecordProjectView creates the counter row on first view or atomically
// increments it on repeat views. The upsert is a single statement so
// concurrent views of the same project never lose an increment.
func (s *AnalyticsStore) RecordProjectView(ctx context.Context, projectID, projectTitle string, now time.Time) error {
	ts := formatTime(now)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_views (project_id, project_title, view_count, viewed_at, last_viewed)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			view_count = view_count + 1,
			last_viewed = excluded.last_viewed
	`, projectID, projectTitle, ts, ts)
	if err != nil {
		return fmt.Errorf("recording project view: %w", err)
	}
	return nil
}

// CountPageViews returns the number of page views at or after the cutoff.
func (s *AnalyticsStore) CountPageViews(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM page_views WHERE viewed_at >= ?
	`, formatTime(since)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting page views: %w", err)
	}
	return count, nil
}

// CountUniqueVisitors returns the number of distinct ip_address values among
// page views at or after the cutoff. Rows with an empty ip_address collapse
// into a single bucket rather than being excluded.
func (s *AnalyticsStore) CountUniqueVisitors(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT ip_address) FROM page_views WHERE viewed_at >= ?
	`, formatTime(since)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unique visitors: %w", err)
	}
	return count, nil
}

// SumProjectViews sums view_count across projects whose last_viewed falls at
// or after the cutoff. See model.Summary for the windowing caveat.
func (s *AnalyticsStore) SumProjectViews(ctx context.Context, since time.Time) (int64, error) {
	var sum sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(view_count) FROM project_views WHERE last_viewed >= ?
	`, formatTime(since)).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("summing project views: %w", err)
	}
	return sum.Int64, nil
}

// PageViewsByDay returns per-day view counts for days with at least one view
// at or after the cutoff, most recent day first.
func (s *AnalyticsStore) PageViewsByDay(ctx context.Context, since time.Time) ([]model.DayCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DATE(viewed_at) AS day, COUNT(*) AS views
		FROM page_views
		WHERE viewed_at >= ?
		GROUP BY DATE(viewed_at)
		ORDER BY day DESC
	`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("grouping page views by day: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var days []model.DayCount
	for rows.Next() {
		var d model.DayCount
		if err := rows.Scan(&d.Date, &d.Views); err != nil {
			return nil, fmt.Errorf("scanning day count: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// PopularProjects returns project counters ordered by view_count descending,
// truncated to limit.
func (s *AnalyticsStore) PopularProjects(ctx context.Context, limit int) ([]model.ProjectView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project_id, project_title, view_count, viewed_at, last_viewed
		FROM project_views
		ORDER BY view_count DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing popular projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []model.ProjectView
	for rows.Next() {
		var (
			p                      model.ProjectView
			firstViewed, lastViewed string
		)
		if err := rows.Scan(&p.ProjectID, &p.ProjectTitle, &p.ViewCount, &firstViewed, &lastViewed); err != nil {
			return nil, fmt.Errorf("scanning project view: %w", err)
		}
		if p.FirstViewed, err = parseTime(firstViewed); err != nil {
			return nil, fmt.Errorf("parsing viewed_at: %w", err)
		}
		if p.LastViewed, err = parseTime(lastViewed); err != nil {
			return nil, fmt.Errorf("parsing last_viewed: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProjectView returns the counter row for a single project.
// Returns sql.ErrNoRows when the project has never been viewed.
func (s *AnalyticsStore) GetProjectView(ctx context.Context, projectID string) (model.ProjectView, error) {
	var (
		p                       model.ProjectView
		firstViewed, lastViewed string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT project_id, project_title, view_count, viewed_at, last_viewed
		FROM project_views
		WHERE project_id = ?
	`, projectID).Scan(&p.ProjectID, &p.ProjectTitle, &p.ViewCount, &firstViewed, &lastViewed)
	if err != nil {
		return model.ProjectView{}, err
	}
	if p.FirstViewed, err = parseTime(firstViewed); err != nil {
		return model.ProjectView{}, fmt.Errorf("parsing viewed_at: %w", err)
	}
	if p.LastViewed, err = parseTime(lastViewed); err != nil {
		return model.ProjectView{}, fmt.Errorf("parsing last_viewed: %w", err)
	}
	return p, nil
}

// AddrCount pairs a stored column value with its view count.
type AddrCount struct {
	Value string
	Count int64
}

// UserAgentCounts returns view counts grouped by raw user agent string for
// views at or after the cutoff. The tech breakdown parses these at read time.
func (s *AnalyticsStore) UserAgentCounts(ctx context.Context, since time.Time) ([]AddrCount, error) {
	return s.groupedCounts(ctx, "user_agent", since)
}

// IPAddressCounts returns view counts grouped by ip_address for views at or
// after the cutoff. Used for the GeoIP country breakdown.
func (s *AnalyticsStore) IPAddressCounts(ctx context.Context, since time.Time) ([]AddrCount, error) {
	return s.groupedCounts(ctx, "ip_address", since)
}

func (s *AnalyticsStore) groupedCounts(ctx context.Context, column string, since time.Time) ([]AddrCount, error) {
	// column is one of two fixed identifiers, never user input
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+column+`, COUNT(*)
		FROM page_views
		WHERE viewed_at >= ?
		GROUP BY `+column+`
	`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("grouping page views by %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var counts []AddrCount
	for rows.Next() {
		var c AddrCount
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning %s count: %w", column, err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DeleteViewsBefore removes page views older than the cutoff and returns the
// number of rows deleted. Used by the retention sweep.
func (s *AnalyticsStore) DeleteViewsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM page_views WHERE viewed_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("deleting old page views: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return deleted, nil
}

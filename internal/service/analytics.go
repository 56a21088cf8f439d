// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/geoip"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/model"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/store"
)

// DefaultSummaryDays is the rollup window when none is given.
const DefaultSummaryDays = 30

// DefaultPopularLimit is the popular-projects truncation when none is given.
const DefaultPopularLimit = 10

// maxTechStats caps each breakdown list in the tech report.
const maxTechStats = 10

// AnalyticsService records page and project views and computes rollups.
type AnalyticsService struct {
	analytics *store.AnalyticsStore
	contacts  *store.ContactStore
	geo       *geoip.Lookup // nil when GeoIP is not configured
	logger    *slog.Logger
	now       func() time.Time
}

// NewAnalyticsService creates an AnalyticsService. geo may be nil.
func NewAnalyticsService(analytics *store.AnalyticsStore, contacts *store.ContactStore, geo *geoip.Lookup, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		contacts:  contacts,
		geo:       geo,
		logger:    logger,
		now:       time.Now,
	}
}

// PageViewInput is one tracked page view. Only Page is required; the other
// fields are stored as given, empty included.
type PageViewInput struct {
	Page      string
	Referrer  string
	UserAgent string
	IPAddress string
}

// RecordPageView appends one page view row with viewed_at set to now.
func (s *AnalyticsService) RecordPageView(ctx context.Context, in PageViewInput) error {
	if strings.TrimSpace(in.Page) == "" {
		return &ValidationError{Fields: map[string]string{"page": "Page is required"}}
	}

	view := model.PageView{
		Page:      in.Page,
		Referrer:  in.Referrer,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		ViewedAt:  s.now(),
	}
	return s.analytics.InsertPageView(ctx, view)
}

// RecordProjectView creates or atomically increments the counter for a
// project. Both arguments are required.
func (s *AnalyticsService) RecordProjectView(ctx context.Context, projectID, projectTitle string) error {
	fields := make(map[string]string)
	if strings.TrimSpace(projectID) == "" {
		fields["projectId"] = "Project ID is required"
	}
	if strings.TrimSpace(projectTitle) == "" {
		fields["projectTitle"] = "Project title is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return s.analytics.RecordProjectView(ctx, projectID, projectTitle, s.now())
}

// Summary computes the rollup over the trailing window of days.
func (s *AnalyticsService) Summary(ctx context.Context, days int) (model.Summary, error) {
	if days < 1 {
		days = DefaultSummaryDays
	}
	since := s.now().AddDate(0, 0, -days)

	totalPageViews, err := s.analytics.CountPageViews(ctx, since)
	if err != nil {
		return model.Summary{}, fmt.Errorf("summary: %w", err)
	}
	uniqueVisitors, err := s.analytics.CountUniqueVisitors(ctx, since)
	if err != nil {
		return model.Summary{}, fmt.Errorf("summary: %w", err)
	}
	totalContacts, err := s.contacts.CountCreatedSince(ctx, since)
	if err != nil {
		return model.Summary{}, fmt.Errorf("summary: %w", err)
	}
	totalProjectViews, err := s.analytics.SumProjectViews(ctx, since)
	if err != nil {
		return model.Summary{}, fmt.Errorf("summary: %w", err)
	}
	byDay, err := s.analytics.PageViewsByDay(ctx, since)
	if err != nil {
		return model.Summary{}, fmt.Errorf("summary: %w", err)
	}
	if byDay == nil {
		byDay = []model.DayCount{}
	}

	return model.Summary{
		TotalPageViews:    totalPageViews,
		UniqueVisitors:    uniqueVisitors,
		TotalContacts:     totalContacts,
		TotalProjectViews: totalProjectViews,
		PageViewsByDay:    byDay,
		Period:            fmt.Sprintf("%d days", days),
	}, nil
}

// PopularProjects returns the most viewed projects, view_count descending.
func (s *AnalyticsService) PopularProjects(ctx context.Context, limit int) ([]model.ProjectView, error) {
	if limit < 1 {
		limit = DefaultPopularLimit
	}
	projects, err := s.analytics.PopularProjects(ctx, limit)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.ProjectView{}
	}
	return projects, nil
}

// TechBreakdown reports browser and device shares parsed from stored user
// agents and, when GeoIP is configured, country shares from stored IPs.
func (s *AnalyticsService) TechBreakdown(ctx context.Context, days int) (model.TechBreakdown, error) {
	if days < 1 {
		days = DefaultSummaryDays
	}
	since := s.now().AddDate(0, 0, -days)

	uaCounts, err := s.analytics.UserAgentCounts(ctx, since)
	if err != nil {
		return model.TechBreakdown{}, fmt.Errorf("tech breakdown: %w", err)
	}

	browsers := make(map[string]int64)
	devices := make(map[string]int64)
	for _, c := range uaCounts {
		ua := parseUserAgent(c.Value)
		browsers[ua.Browser] += c.Count
		devices[ua.DeviceType] += c.Count
	}

	breakdown := model.TechBreakdown{
		Browsers:  rankedStats(browsers),
		Devices:   rankedStats(devices),
		Countries: []model.TechStat{},
		Period:    fmt.Sprintf("%d days", days),
	}

	if s.geo != nil && s.geo.IsEnabled() {
		ipCounts, err := s.analytics.IPAddressCounts(ctx, since)
		if err != nil {
			return model.TechBreakdown{}, fmt.Errorf("tech breakdown: %w", err)
		}
		countries := make(map[string]int64)
		for _, c := range ipCounts {
			code := s.geo.LookupCountry(c.Value)
			if code == "" {
				continue
			}
			countries[code] += c.Count
		}
		breakdown.Countries = rankedStats(countries)
	}

	return breakdown, nil
}

// rankedStats converts a name->views map into a list sorted by views
// descending with percentages, truncated to maxTechStats.
func rankedStats(counts map[string]int64) []model.TechStat {
	stats := make([]model.TechStat, 0, len(counts))
	var total int64
	for name, views := range counts {
		stats = append(stats, model.TechStat{Name: name, Views: views})
		total += views
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Views != stats[j].Views {
			return stats[i].Views > stats[j].Views
		}
		return stats[i].Name < stats[j].Name
	})

	if len(stats) > maxTechStats {
		stats = stats[:maxTechStats]
	}
	for i := range stats {
		if total > 0 {
			stats[i].Percent = float64(stats[i].Views) / float64(total) * 100
		}
	}
	return stats
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// PageView is a single append-only page view record.
type PageView struct {
	Page      string    `json:"page"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// ProjectView is the cumulative view counter for a single project.
// Exactly one row exists per ProjectID.
type ProjectView struct {
	ProjectID    string    `json:"projectId"`
	ProjectTitle string    `json:"projectTitle"`
	ViewCount    int64     `json:"viewCount"`
	FirstViewed  time.Time `json:"firstViewed"`
	LastViewed   time.Time `json:"lastViewed"`
}

// DayCount is the number of page views on a single calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// Summary is the analytics rollup over a trailing window of days.
//
// TotalProjectViews sums the cumulative view_count of projects whose
// last_viewed falls inside the window, so pre-window views of a project
// that was also viewed in-window are included. This matches the behavior
// the site has always reported; a strictly windowed count would need a
// per-view event log that the schema does not keep.
type Summary struct {
	TotalPageViews    int64      `json:"totalPageViews"`
	UniqueVisitors    int64      `json:"uniqueVisitors"`
	TotalContacts     int64      `json:"totalContacts"`
	TotalProjectViews int64      `json:"totalProjectViews"`
	PageViewsByDay    []DayCount `json:"pageViewsByDay"`
	Period            string     `json:"period"`
}

// TechStat is one row of a browser/device/country breakdown.
type TechStat struct {
	Name    string  `json:"name"`
	Views   int64   `json:"views"`
	Percent float64 `json:"percent"`
}

// TechBreakdown groups page views by client technology, computed from
// stored user agent strings and, when GeoIP is configured, IP addresses.
type TechBreakdown struct {
	Browsers  []TechStat `json:"browsers"`
	Devices   []TechStat `json:"devices"`
	Countries []TechStat `json:"countries"`
	Period    string     `json:"period"`
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is a small Go client for the portfolio backend API.
//
// Tracking calls (TrackPageView, TrackProjectView) are fire-and-forget:
// network and decode failures come back as an unsuccessful Envelope, never
// as an error, so a broken tracker cannot break the caller. Data calls
// return errors the conventional way.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Envelope is the common response wrapper of the API.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Client talks to a portfolio backend instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContactInput is a contact form post.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitResult is the response to a contact submission.
type SubmitResult struct {
	Envelope
	ContactID int64 `json:"contactId"`
}

// SubmitContact posts a contact form submission.
func (c *Client) SubmitContact(ctx context.Context, in ContactInput) (SubmitResult, error) {
	var out SubmitResult
	if err := c.post(ctx, "/contact/submit", in, &out); err != nil {
		return SubmitResult{}, err
	}
	return out, nil
}

// PageView describes one page view to track.
type PageView struct {
	Page      string `json:"page"`
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// TrackPageView records a page view. Never returns an error.
func (c *Client) TrackPageView(ctx context.Context, pv PageView) Envelope {
	var out Envelope
	if err := c.post(ctx, "/analytics/pageview", pv, &out); err != nil {
		return Envelope{Success: false, Message: err.Error()}
	}
	return out
}

// TrackProjectView records a project view. Never returns an error.
func (c *Client) TrackProjectView(ctx context.Context, projectID, projectTitle string) Envelope {
	body := map[string]string{
		"projectId":    projectID,
		"projectTitle": projectTitle,
	}
	var out Envelope
	if err := c.post(ctx, "/analytics/project-view", body, &out); err != nil {
		return Envelope{Success: false, Message: err.Error()}
	}
	return out
}

// Summary is the analytics summary payload.
type Summary struct {
	TotalPageViews    int64      `json:"totalPageViews"`
	UniqueVisitors    int64      `json:"uniqueVisitors"`
	TotalContacts     int64      `json:"totalContacts"`
	TotalProjectViews int64      `json:"totalProjectViews"`
	PageViewsByDay    []DayCount `json:"pageViewsByDay"`
	Period            string     `json:"period"`
}

// DayCount is one day's page view count.
type DayCount struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// ProjectView is one project's view counter.
type ProjectView struct {
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
	ViewCount    int64  `json:"viewCount"`
	LastViewed   string `json:"lastViewed"`
}

// GetSummary fetches the analytics summary over the last days.
func (c *Client) GetSummary(ctx context.Context, days int) (Summary, error) {
	var out struct {
		Envelope
		Data Summary `json:"data"`
	}
	path := "/analytics/summary?days=" + strconv.Itoa(days)
	if err := c.get(ctx, path, &out); err != nil {
		return Summary{}, err
	}
	if !out.Success {
		return Summary{}, fmt.Errorf("api error: %s", out.Message)
	}
	return out.Data, nil
}

// GetPopularProjects fetches the most viewed projects.
func (c *Client) GetPopularProjects(ctx context.Context, limit int) ([]ProjectView, error) {
	var out struct {
		Envelope
		Data []ProjectView `json:"data"`
	}
	path := "/analytics/popular-projects?limit=" + strconv.Itoa(limit)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("api error: %s", out.Message)
	}
	return out.Data, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

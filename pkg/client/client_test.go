// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/contact/submit" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var in ContactInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if in.Name != "Jo" || in.Email != "jo@x.com" {
			t.Errorf("input = %+v", in)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"message":   "Message sent successfully!",
			"contactId": 7,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.SubmitContact(context.Background(), ContactInput{
		Name: "Jo", Email: "jo@x.com", Subject: "Hi", Message: "Hello",
	})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if !res.Success || res.ContactID != 7 {
		t.Errorf("result = %+v", res)
	}
}

func TestSubmitContactValidationEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Name is required",
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).SubmitContact(context.Background(), ContactInput{})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if res.Success {
		t.Error("success should be false")
	}
	if res.Message != "Name is required" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestTrackPageViewNeverErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Page view tracked"})
	}))

	c := New(srv.URL)
	env := c.TrackPageView(context.Background(), PageView{Page: "/projects"})
	if !env.Success {
		t.Errorf("envelope = %+v", env)
	}

	// Server goes away: still no error, just an unsuccessful envelope
	srv.Close()
	env = c.TrackPageView(context.Background(), PageView{Page: "/projects"})
	if env.Success {
		t.Error("success should be false after network failure")
	}
	if env.Message == "" {
		t.Error("failure envelope should carry a message")
	}
}

func TestTrackProjectView(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Project view tracked"})
	}))
	defer srv.Close()

	env := New(srv.URL).TrackProjectView(context.Background(), "weather-app", "Weather App")
	if !env.Success {
		t.Errorf("envelope = %+v", env)
	}
	if gotBody["projectId"] != "weather-app" || gotBody["projectTitle"] != "Weather App" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestGetSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analytics/summary" || r.URL.Query().Get("days") != "7" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"totalPageViews":    42,
				"uniqueVisitors":    10,
				"totalContacts":     3,
				"totalProjectViews": 17,
				"pageViewsByDay":    []map[string]any{{"date": "2026-02-11", "views": 42}},
				"period":            "7 days",
			},
		})
	}))
	defer srv.Close()

	sum, err := New(srv.URL).GetSummary(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if sum.TotalPageViews != 42 || sum.Period != "7 days" {
		t.Errorf("summary = %+v", sum)
	}
	if len(sum.PageViewsByDay) != 1 || sum.PageViewsByDay[0].Date != "2026-02-11" {
		t.Errorf("pageViewsByDay = %+v", sum.PageViewsByDay)
	}
}

func TestGetSummaryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Failed to retrieve analytics",
		})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).GetSummary(context.Background(), 30); err == nil {
		t.Error("expected error from unsuccessful envelope")
	}
}

func TestGetPopularProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "2" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"projectId": "project-a", "projectTitle": "A", "viewCount": 5},
				{"projectId": "project-c", "projectTitle": "C", "viewCount": 3},
			},
		})
	}))
	defer srv.Close()

	projects, err := New(srv.URL).GetPopularProjects(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetPopularProjects: %v", err)
	}
	if len(projects) != 2 || projects[0].ProjectID != "project-a" {
		t.Errorf("projects = %+v", projects)
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8080/")
	if c.baseURL != "http://localhost:8080" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/middleware"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/service"
)

// AnalyticsHandler serves the tracking and reporting endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

type pageViewRequest struct {
	Page      string `json:"page"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"userAgent"`
}

// TrackPageView handles POST /analytics/pageview. Tracking failures
// answer 200 with success:false so a broken tracker never breaks a
// page render.
func (h *AnalyticsHandler) TrackPageView(w http.ResponseWriter, r *http.Request) {
	var req pageViewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.analytics.RecordPageView(r.Context(), service.PageViewInput{
		Page:      req.Page,
		Referrer:  req.Referrer,
		UserAgent: req.UserAgent,
		IPAddress: middleware.ClientIP(r),
	})
	if err != nil {
		h.logger.Error("tracking page view failed", "error", err)
		writeError(w, http.StatusOK, "Failed to track page view")
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"message": "Page view tracked"})
}

type projectViewRequest struct {
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
}

// TrackProjectView handles POST /analytics/project-view.
func (h *AnalyticsHandler) TrackProjectView(w http.ResponseWriter, r *http.Request) {
	var req projectViewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.analytics.RecordProjectView(r.Context(), req.ProjectID, req.ProjectTitle); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, "Project ID and title are required")
			return
		}
		h.logger.Error("tracking project view failed", "error", err)
		writeError(w, http.StatusOK, "Failed to track project view")
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"message": "Project view tracked"})
}

// Summary handles GET /analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", service.DefaultSummaryDays)

	summary, err := h.analytics.Summary(r.Context(), days)
	if err != nil {
		h.logger.Error("analytics summary failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve analytics")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": summary})
}

// PopularProjects handles GET /analytics/popular-projects.
func (h *AnalyticsHandler) PopularProjects(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", service.DefaultPopularLimit)

	projects, err := h.analytics.PopularProjects(r.Context(), limit)
	if err != nil {
		h.logger.Error("popular projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve popular projects")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": projects})
}

// TechBreakdown handles GET /analytics/tech.
func (h *AnalyticsHandler) TechBreakdown(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", service.DefaultSummaryDays)

	breakdown, err := h.analytics.TechBreakdown(r.Context(), days)
	if err != nil {
		h.logger.Error("tech breakdown failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve analytics")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": breakdown})
}

// queryInt parses a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}

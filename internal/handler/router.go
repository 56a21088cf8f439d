// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/middleware"
)

// RouterConfig carries everything the router needs besides the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	ContactLimiter *middleware.RateLimiter
}

// NewRouter assembles the HTTP surface: middleware stack, health check,
// contact endpoints and analytics endpoints.
func NewRouter(contact *ContactHandler, analytics *AnalyticsHandler, health *HealthHandler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", health.Health)

	r.Route("/contact", func(r chi.Router) {
		if cfg.ContactLimiter != nil {
			r.With(cfg.ContactLimiter.Middleware()).Post("/submit", contact.Submit)
		} else {
			r.Post("/submit", contact.Submit)
		}
		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", contact.List)
			r.Get("/{id}", contact.Get)
			r.Put("/{id}/read", contact.MarkRead)
			r.Delete("/{id}", contact.Delete)
		})
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Post("/pageview", analytics.TrackPageView)
		r.Post("/project-view", analytics.TrackProjectView)
		r.Get("/summary", analytics.Summary)
		r.Get("/popular-projects", analytics.PopularProjects)
		r.Get("/tech", analytics.TechBreakdown)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	return r
}

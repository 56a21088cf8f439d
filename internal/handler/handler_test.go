// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/service"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/store"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/testutil"
)

// newTestRouter wires real services over a temporary database.
func newTestRouter(t *testing.T) (chi.Router, *sql.DB, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	logger := testutil.TestLogger()

	contacts := store.NewContactStore(db)
	analytics := store.NewAnalyticsStore(db)

	contactSvc := service.NewContactService(contacts, nil, logger)
	analyticsSvc := service.NewAnalyticsService(analytics, contacts, nil, logger)

	r := NewRouter(
		NewContactHandler(contactSvc, logger),
		NewAnalyticsHandler(analyticsSvc, logger),
		NewHealthHandler(db),
		RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	)
	return r, db, cleanup
}

// doJSON performs a request with a JSON body and returns the recorder.
func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

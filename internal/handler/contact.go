// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/service"
)

// ContactHandler serves the contact form endpoints.
type ContactHandler struct {
	contacts *service.ContactService
	logger   *slog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contacts *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /contact/submit.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.contacts.Submit(r.Context(), service.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message())
			return
		}
		h.logger.Error("contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit contact form")
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"message":   "Message sent successfully!",
		"contactId": id,
	})
}

// List handles GET /contact/submissions.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	unreadOnly := q.Get("unreadOnly") == "true"

	result, err := h.contacts.List(r.Context(), page, limit, unreadOnly)
	if err != nil {
		h.logger.Error("listing submissions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve submissions")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"data": result.Items,
		"pagination": Pagination{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      int(result.Total),
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /contact/submissions/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.submissionID(w, r)
	if !ok {
		return
	}

	sub, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Submission not found")
			return
		}
		h.logger.Error("getting submission failed", "error", err, "contact_id", id)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve submission")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": sub})
}

// MarkRead handles PUT /contact/submissions/{id}/read.
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.submissionID(w, r)
	if !ok {
		return
	}

	updated, err := h.contacts.MarkRead(r.Context(), id)
	if err != nil {
		h.logger.Error("marking submission read failed", "error", err, "contact_id", id)
		writeError(w, http.StatusInternalServerError, "Failed to update submission")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "Submission not found")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"message": "Submission marked as read"})
}

// Delete handles DELETE /contact/submissions/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.submissionID(w, r)
	if !ok {
		return
	}

	deleted, err := h.contacts.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("deleting submission failed", "error", err, "contact_id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete submission")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Submission not found")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"message": "Submission deleted successfully"})
}

// submissionID parses the {id} route parameter. A non-numeric id is
// indistinguishable from an unknown one as far as the caller cares.
func (h *ContactHandler) submissionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusNotFound, "Submission not found")
		return 0, false
	}
	return id, true
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/model"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/store"
)

// emailPattern is the basic local@domain shape the contact form accepts.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DefaultPageSize is the submissions list page size when none is given.
const DefaultPageSize = 10

// MaxPageSize caps the submissions list page size.
const MaxPageSize = 100

// Notifier delivers a notification about a new contact submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub model.ContactSubmission) error
}

// ContactService validates and stores contact-form submissions.
type ContactService struct {
	contacts *store.ContactStore
	notifier Notifier // nil when notifications are disabled
	logger   *slog.Logger
	now      func() time.Time
}

// NewContactService creates a ContactService. notifier may be nil.
func NewContactService(contacts *store.ContactStore, notifier Notifier, logger *slog.Logger) *ContactService {
	return &ContactService{
		contacts: contacts,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitInput is a contact form post.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit validates the input and stores a new submission, returning its id.
// Invalid input fails with a *ValidationError before anything is written.
//
// When a notifier is configured the notification email is sent from a
// detached goroutine; a delivery failure is logged and never changes the
// outcome of Submit.
func (s *ContactService) Submit(ctx context.Context, in SubmitInput) (int64, error) {
	if fields := validateSubmitInput(in); len(fields) > 0 {
		return 0, &ValidationError{Fields: fields}
	}

	createdAt := s.now()
	id, err := s.contacts.Insert(ctx, in.Name, in.Email, in.Subject, in.Message, createdAt)
	if err != nil {
		return 0, fmt.Errorf("storing submission: %w", err)
	}

	if s.notifier != nil {
		sub := model.ContactSubmission{
			ID:        id,
			Name:      in.Name,
			Email:     in.Email,
			Subject:   in.Subject,
			Message:   in.Message,
			CreatedAt: createdAt,
		}
		// Detached from the request: uses a background context so the
		// email still goes out after the response is written.
		go func() {
			if err := s.notifier.NotifySubmission(context.Background(), sub); err != nil {
				s.logger.Error("contact notification failed", "error", err, "contact_id", id)
			}
		}()
	}

	return id, nil
}

func validateSubmitInput(in SubmitInput) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(in.Subject) == "" {
		fields["subject"] = "Subject is required"
	}
	if strings.TrimSpace(in.Message) == "" {
		fields["message"] = "Message is required"
	}
	switch {
	case strings.TrimSpace(in.Email) == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(in.Email):
		fields["email"] = "Invalid email format"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ContactPage is one page of the submissions list.
type ContactPage struct {
	Items      []model.ContactSubmission
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// List returns submissions ordered newest first, optionally restricted to
// unread rows, along with the total count under the same filter.
func (s *ContactService) List(ctx context.Context, page, limit int, unreadOnly bool) (ContactPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	offset := (page - 1) * limit
	items, err := s.contacts.List(ctx, limit, offset, unreadOnly)
	if err != nil {
		return ContactPage{}, fmt.Errorf("listing submissions: %w", err)
	}

	total, err := s.contacts.Count(ctx, unreadOnly)
	if err != nil {
		return ContactPage{}, fmt.Errorf("counting submissions: %w", err)
	}

	return ContactPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Get returns a single submission. Returns ErrNotFound for an unknown id.
func (s *ContactService) Get(ctx context.Context, id int64) (model.ContactSubmission, error) {
	sub, err := s.contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ContactSubmission{}, ErrNotFound
		}
		return model.ContactSubmission{}, fmt.Errorf("getting submission: %w", err)
	}
	return sub, nil
}

// MarkRead marks a submission as read. Returns false for an unknown id.
func (s *ContactService) MarkRead(ctx context.Context, id int64) (bool, error) {
	return s.contacts.MarkRead(ctx, id)
}

// Delete removes a submission. Returns false for an unknown id.
func (s *ContactService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.contacts.Delete(ctx, id)
}

// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/model"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/store"
	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/testutil"
)

func newContactService(t *testing.T, notifier Notifier) (*ContactService, *store.ContactStore, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	contacts := store.NewContactStore(db)
	return NewContactService(contacts, notifier, testutil.TestLogger()), contacts, cleanup
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:    "Jo",
		Email:   "jo@x.com",
		Subject: "Hi",
		Message: "Hello",
	}
}

func TestSubmitAndGet(t *testing.T) {
	svc, _, cleanup := newContactService(t, nil)
	defer cleanup()

	ctx := context.Background()
	id, err := svc.Submit(ctx, validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id == 0 {
		t.Error("id should not be 0")
	}

	sub, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sub.Name != "Jo" || sub.Email != "jo@x.com" || sub.Subject != "Hi" || sub.Message != "Hello" {
		t.Errorf("unexpected submission: %+v", sub)
	}
	if sub.IsRead {
		t.Error("new submission should not be read")
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, contacts, cleanup := newContactService(t, nil)
	defer cleanup()

	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*SubmitInput)
		field  string
		msg    string
	}{
		{"missing name", func(in *SubmitInput) { in.Name = "" }, "name", "Name is required"},
		{"whitespace name", func(in *SubmitInput) { in.Name = "   " }, "name", "Name is required"},
		{"missing subject", func(in *SubmitInput) { in.Subject = "" }, "subject", "Subject is required"},
		{"missing message", func(in *SubmitInput) { in.Message = "" }, "message", "Message is required"},
		{"missing email", func(in *SubmitInput) { in.Email = "" }, "email", "Email is required"},
		{"malformed email", func(in *SubmitInput) { in.Email = "not-an-email" }, "email", "Invalid email format"},
		{"email without tld", func(in *SubmitInput) { in.Email = "jo@x" }, "email", "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Submit(ctx, in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Submit error = %v, want ValidationError", err)
			}
			if got := ve.Fields[tt.field]; got != tt.msg {
				t.Errorf("Fields[%q] = %q, want %q", tt.field, got, tt.msg)
			}
		})
	}

	// No partial writes on validation failure
	count, err := contacts.Count(ctx, false)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("contacts count = %d, want 0 after rejected submissions", count)
	}
}

// recordingNotifier captures submissions handed to it.
type recordingNotifier struct {
	mu   sync.Mutex
	got  []model.ContactSubmission
	err  error
	done chan struct{}
}

func (n *recordingNotifier) NotifySubmission(_ context.Context, sub model.ContactSubmission) error {
	n.mu.Lock()
	n.got = append(n.got, sub)
	n.mu.Unlock()
	close(n.done)
	return n.err
}

func TestSubmitNotifies(t *testing.T) {
	notifier := &recordingNotifier{done: make(chan struct{})}
	svc, _, cleanup := newContactService(t, notifier)
	defer cleanup()

	id, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.got))
	}
	if notifier.got[0].ID != id || notifier.got[0].Email != "jo@x.com" {
		t.Errorf("notified submission = %+v", notifier.got[0])
	}
}

func TestSubmitSwallowsNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{done: make(chan struct{}), err: errors.New("smtp down")}
	svc, _, cleanup := newContactService(t, notifier)
	defer cleanup()

	// Delivery failure must not surface to the submitter
	if _, err := svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestListPagination(t *testing.T) {
	svc, _, cleanup := newContactService(t, nil)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 7; i++ {
		if _, err := svc.Submit(ctx, validInput()); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	page1, err := svc.List(ctx, 1, 3, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page1.Total != 7 {
		t.Errorf("Total = %d, want 7", page1.Total)
	}
	if page1.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page1.TotalPages)
	}
	if len(page1.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3", len(page1.Items))
	}

	// Sum of items across all pages equals total
	sum := 0
	for p := 1; p <= page1.TotalPages; p++ {
		pg, err := svc.List(ctx, p, 3, false)
		if err != nil {
			t.Fatalf("List page %d: %v", p, err)
		}
		sum += len(pg.Items)
	}
	if int64(sum) != page1.Total {
		t.Errorf("sum of pages = %d, want %d", sum, page1.Total)
	}
}

func TestListClampsInput(t *testing.T) {
	svc, _, cleanup := newContactService(t, nil)
	defer cleanup()

	ctx := context.Background()
	page, err := svc.List(ctx, -5, 0, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 1 {
		t.Errorf("Page = %d, want 1", page.Page)
	}
	if page.Limit != DefaultPageSize {
		t.Errorf("Limit = %d, want %d", page.Limit, DefaultPageSize)
	}

	page, err = svc.List(ctx, 1, 10000, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Limit != MaxPageSize {
		t.Errorf("Limit = %d, want %d", page.Limit, MaxPageSize)
	}
}

func TestGetUnknownIsNotFound(t *testing.T) {
	svc, _, cleanup := newContactService(t, nil)
	defer cleanup()

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(42) error = %v, want ErrNotFound", err)
	}
}

func TestMarkReadThenDelete(t *testing.T) {
	svc, _, cleanup := newContactService(t, nil)
	defer cleanup()

	ctx := context.Background()
	id, err := svc.Submit(ctx, validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	ok, err := svc.MarkRead(ctx, id)
	if err != nil || !ok {
		t.Fatalf("MarkRead = (%v, %v), want (true, nil)", ok, err)
	}

	sub, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !sub.IsRead {
		t.Error("submission should be read")
	}

	ok, err = svc.Delete(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", ok, err)
	}

	if _, err := svc.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
}

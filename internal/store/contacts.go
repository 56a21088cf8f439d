// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/model"
)

// ContactStore runs queries against the contacts table.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a ContactStore over the given database handle.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Insert stores a new contact submission and returns its assigned id.
func (s *ContactStore) Insert(ctx context.Context, name, email, subject, message string, createdAt time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (name, email, subject, message, is_read, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, name, email, subject, message, formatTime(createdAt))
	if err != nil {
		return 0, fmt.Errorf("inserting contact: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading contact id: %w", err)
	}
	return id, nil
}

// Get returns a single submission by id. Returns sql.ErrNoRows when absent.
func (s *ContactStore) Get(ctx context.Context, id int64) (model.ContactSubmission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, subject, message, is_read, created_at
		FROM contacts
		WHERE id = ?
	`, id)
	return scanContact(row)
}

// List returns submissions ordered by created_at descending.
// When unreadOnly is true, rows already marked read are excluded.
func (s *ContactStore) List(ctx context.Context, limit, offset int, unreadOnly bool) ([]model.ContactSubmission, error) {
	query := `
		SELECT id, name, email, subject, message, is_read, created_at
		FROM contacts
	`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.ContactSubmission
	for rows.Next() {
		sub, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Count returns the number of submissions under the same filter List uses.
func (s *ContactStore) Count(ctx context.Context, unreadOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM contacts`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return count, nil
}

// CountCreatedSince returns the number of submissions created at or after
// the given cutoff. Used by the analytics summary.
func (s *ContactStore) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contacts WHERE created_at >= ?
	`, formatTime(since)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting recent contacts: %w", err)
	}
	return count, nil
}

// MarkRead flips is_read to true for the given id.
// Returns false when no row with that id exists.
func (s *ContactStore) MarkRead(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE contacts SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("marking contact read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a submission. Returns false when no row with that id exists.
func (s *ContactStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (model.ContactSubmission, error) {
	var (
		sub       model.ContactSubmission
		isRead    int
		createdAt string
	)
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Subject, &sub.Message, &isRead, &createdAt); err != nil {
		return model.ContactSubmission{}, err
	}

	sub.IsRead = isRead != 0

	t, err := parseTime(createdAt)
	if err != nil {
		return model.ContactSubmission{}, fmt.Errorf("parsing created_at: %w", err)
	}
	sub.CreatedAt = t

	return sub, nil
}

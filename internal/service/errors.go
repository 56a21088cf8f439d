// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the submission and analytics services on top of
// the store layer. Validation happens here, before any write reaches the
// database.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound reports that no entity with the requested id exists.
var ErrNotFound = errors.New("not found")

// ValidationError reports user-correctable input problems, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns a single user-facing description of the failure.
func (e *ValidationError) Message() string {
	if len(e.Fields) == 0 {
		return "Invalid input"
	}

	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return e.Fields[names[0]]
}

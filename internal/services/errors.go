// Package services defines the business logic for registrations, drafts,
// material selection, and exports. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested record (draft, material
	// selection, last submission) does not exist locally.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownMaterial is returned when a material selection names a
	// slug outside the fixed catalog.
	ErrUnknownMaterial = errors.New("unknown material")
)

// ValidationError carries the per-field failure messages of a rejected
// registration. The handler layer renders the map verbatim; no field ever
// maps to an empty message.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface with a stable, sorted summary.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

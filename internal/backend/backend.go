// Package backend implements the interchangeable submission backends that
// durably record a registration with an external system: the
// spreadsheet-macro endpoint, the hosted-forms provider, and the local
// manual-entry fallback.
//
// Every backend satisfies the Submitter contract. Exactly one backend is
// active per process, selected by configuration; the service layer owns
// the surrounding pipeline (validation, stamping, offline queueing,
// logging of outcomes) and calls Send for the transport step only.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecopots/go-registration-backend/internal/domain"
)

// SubmissionSource is the provenance marker attached to every outbound
// registration.
const SubmissionSource = "Eco-Pots Web App"

// ErrNotConfigured marks a permanent configuration problem (missing
// endpoint or form URL). Such failures are surfaced to the operator and
// must never be queued for retry.
var ErrNotConfigured = errors.New("backend not configured")

// TransportError wraps a retryable delivery failure: network error,
// timeout, non-2xx status, or an explicit rejection from the remote side.
type TransportError struct {
	Backend string // backend name
	Status  int    // HTTP status, 0 when the request never completed
	Err     error  // underlying cause
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s transport failed: status %d", e.Backend, e.Status)
	}
	return fmt.Sprintf("%s transport failed: %v", e.Backend, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Submitter is the common "submit registration" contract every backend
// implements. Send performs one bounded transport attempt; it does not
// retry, queue, or log outcomes; those belong to the service layer.
type Submitter interface {
	// Name identifies the backend in logs, results, and stored records.
	Name() string
	// Send delivers reg to the external system, honoring ctx for
	// cancellation and the configured timeout. A nil return means the
	// backend confirmed acceptance.
	Send(ctx context.Context, reg *domain.Registration) error
}

// Prober is implemented by backends that can report availability without
// submitting anything.
type Prober interface {
	// Probe returns whether the backend can currently accept submissions,
	// with a short human-readable status message.
	Probe(ctx context.Context) (bool, string)
}

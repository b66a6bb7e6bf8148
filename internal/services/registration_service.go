// Package services – RegistrationService
//
// This file implements the RegistrationService, which owns the submission
// pipeline: validate the form, stamp the derived fields, deliver through
// the configured backend, record confirmed submissions, and queue failed
// or offline submissions for retry. Connectivity is tracked explicitly;
// an offline → online transition drains the retry queue in insertion
// order.
//
// Service-level outcomes are expressed through SubmissionResult rather
// than errors: a rejected or queued submission is a normal result, while
// a non-nil error means local storage itself failed.
package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/backend"
	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
	"github.com/ecopots/go-registration-backend/internal/validation"
)

// RegistrationStore defines the repository contract required by
// RegistrationService. Implementations are responsible for persistence of
// the submission log, the retry queue, and the last-submission snapshot.
type RegistrationStore interface {
	// AppendSubmission records a confirmed delivery, evicting the oldest
	// rows past maxRecords.
	AppendSubmission(ctx context.Context, db *gorm.DB, reg *domain.Registration, backendName string, maxRecords int) (*domain.SubmissionRecord, error)

	// EnqueueForm stores a pending registration for later retry.
	EnqueueForm(ctx context.Context, db *gorm.DB, reg *domain.Registration, retryCount, maxRecords int) (*domain.StoredFormRecord, error)

	// ListQueuedForms returns every queued registration in insertion order.
	ListQueuedForms(ctx context.Context, db *gorm.DB) ([]domain.StoredFormRecord, error)

	// RemoveQueuedForm deletes one queue entry; absent entries are a no-op.
	RemoveQueuedForm(ctx context.Context, db *gorm.DB, id string) error

	// BumpRetryCount increments a queue entry's attempt counter.
	BumpRetryCount(ctx context.Context, db *gorm.DB, id string) error

	// CountQueuedForms returns the current queue depth.
	CountQueuedForms(ctx context.Context, db *gorm.DB) (int64, error)

	// SetJSON stores a JSON-encoded value under a key/value catalog key.
	SetJSON(ctx context.Context, db *gorm.DB, key string, v any) error
}

// SubmissionResult is the uniform outcome of a submission attempt. Every
// backend and every path through the pipeline produces this same shape.
type SubmissionResult struct {
	// Success reports whether the registration was accepted, either
	// confirmed by the backend or safely queued while offline.
	Success bool `json:"success"`
	// Message is a human-readable outcome description.
	Message string `json:"message"`
	// RegistrationID is the stamped unique token, present on accepted
	// submissions.
	RegistrationID string `json:"registration_id,omitempty"`
	// RetryAvailable reports whether retrying now could plausibly succeed.
	RetryAvailable bool `json:"retry_available"`
	// OfflineMode is true when the registration was queued locally
	// because connectivity was down.
	OfflineMode bool `json:"offline_mode"`
}

// DrainReport summarizes one pass over the retry queue.
type DrainReport struct {
	// Attempted is how many queued entries were picked up.
	Attempted int `json:"attempted"`
	// Delivered is how many of them the backend confirmed.
	Delivered int `json:"delivered"`
	// Remaining is the queue depth after the pass.
	Remaining int64 `json:"remaining"`
}

// BackendStatus describes the active backend and the local queue state.
type BackendStatus struct {
	Backend     string `json:"backend"`
	Online      bool   `json:"online"`
	Available   bool   `json:"available"`
	Message     string `json:"message"`
	QueuedForms int64  `json:"queued_forms"`
}

// RegistrationService coordinates validation, delivery, and local
// record-keeping for registrations. Exactly one backend is active; the
// service never switches backends at runtime.
type RegistrationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Store is the repository used by this service.
	Store RegistrationStore
	// Submitter is the configured submission backend.
	Submitter backend.Submitter

	// MaxRetries caps how many failed attempts still advertise
	// RetryAvailable.
	MaxRetries int
	// SuccessLogCap bounds the confirmed-submission log.
	SuccessLogCap int
	// RetryQueueCap bounds the retry queue.
	RetryQueueCap int

	online  atomic.Bool
	drainMu sync.Mutex
}

// NewRegistrationService constructs a RegistrationService. Connectivity
// starts online; callers flip it through SetOnline.
func NewRegistrationService(db *gorm.DB, store RegistrationStore, sub backend.Submitter, maxRetries, successCap, queueCap int) *RegistrationService {
	s := &RegistrationService{
		DB:            db,
		Store:         store,
		Submitter:     sub,
		MaxRetries:    maxRetries,
		SuccessLogCap: successCap,
		RetryQueueCap: queueCap,
	}
	s.online.Store(true)
	return s
}

// Online reports the current connectivity flag.
func (s *RegistrationService) Online() bool { return s.online.Load() }

// Submit runs the full submission pipeline for one registration. The
// returned result is always populated; a non-nil error indicates a local
// storage failure, not a delivery failure.
func (s *RegistrationService) Submit(ctx context.Context, reg *domain.Registration) (*SubmissionResult, error) {
	if ok, fieldErrs := validation.ValidateForm(reg.Fields()); !ok {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	reg.Timestamp = time.Now().UTC()
	if reg.RegistrationID == "" {
		reg.RegistrationID = domain.NewRegistrationID()
	}
	reg.SubmissionSource = backend.SubmissionSource

	if !s.Online() {
		if _, err := s.Store.EnqueueForm(ctx, s.DB, reg, 0, s.RetryQueueCap); err != nil {
			return nil, err
		}
		return &SubmissionResult{
			Success:        true,
			Message:        "Registration saved! It will be submitted when you're back online.",
			RegistrationID: reg.RegistrationID,
			RetryAvailable: true,
			OfflineMode:    true,
		}, nil
	}

	err := s.Submitter.Send(ctx, reg)
	switch {
	case err == nil:
		if rerr := s.recordSuccess(ctx, reg); rerr != nil {
			return nil, rerr
		}
		return &SubmissionResult{
			Success:        true,
			Message:        "Registration submitted successfully!",
			RegistrationID: reg.RegistrationID,
		}, nil

	case errors.Is(err, backend.ErrNotConfigured):
		// Permanent configuration problem: surfaced, never queued.
		log.Error().Str("backend", s.Submitter.Name()).Msg("submission backend not configured")
		return &SubmissionResult{
			Success: false,
			Message: "Submission backend is not configured. Please contact the organizers.",
		}, nil

	default:
		log.Warn().Err(err).Str("backend", s.Submitter.Name()).
			Str("registration_id", reg.RegistrationID).
			Msg("submission failed, queueing for retry")
		if _, qerr := s.Store.EnqueueForm(ctx, s.DB, reg, 1, s.RetryQueueCap); qerr != nil {
			return nil, qerr
		}
		return &SubmissionResult{
			Success:        false,
			Message:        failureMessage(err),
			RegistrationID: reg.RegistrationID,
			RetryAvailable: s.MaxRetries > 1,
		}, nil
	}
}

// SetOnline records a connectivity change. An offline → online transition
// drains the retry queue before returning; the report is nil when no
// drain ran.
func (s *RegistrationService) SetOnline(ctx context.Context, online bool) (*DrainReport, error) {
	was := s.online.Swap(online)
	if !was && online {
		return s.DrainQueue(ctx)
	}
	return nil, nil
}

// DrainQueue retries every queued registration in insertion order. A
// failed entry is left in place with its retry counter bumped and never
// blocks the entries behind it. Only one drain runs at a time.
func (s *RegistrationService) DrainQueue(ctx context.Context) (*DrainReport, error) {
	s.drainMu.Lock()
	defer s.drainMu.Unlock()

	forms, err := s.Store.ListQueuedForms(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	report := &DrainReport{Attempted: len(forms)}
	for _, form := range forms {
		reg, derr := repo.DecodeRegistration(form.Payload, form.RegistrationID)
		if derr != nil {
			// Unreadable entry: drop it rather than retry forever.
			log.Warn().Str("id", form.ID).Msg("dropping unreadable queued registration")
			if rerr := s.Store.RemoveQueuedForm(ctx, s.DB, form.ID); rerr != nil {
				return nil, rerr
			}
			continue
		}

		if serr := s.Submitter.Send(ctx, reg); serr != nil {
			log.Warn().Err(serr).Str("registration_id", reg.RegistrationID).
				Int("retry_count", form.RetryCount).
				Msg("queued registration retry failed")
			if berr := s.Store.BumpRetryCount(ctx, s.DB, form.ID); berr != nil && !errors.Is(berr, repo.ErrNotFound) {
				return nil, berr
			}
			continue
		}

		if rerr := s.recordSuccess(ctx, reg); rerr != nil {
			return nil, rerr
		}
		if rerr := s.Store.RemoveQueuedForm(ctx, s.DB, form.ID); rerr != nil {
			return nil, rerr
		}
		report.Delivered++
	}

	if report.Remaining, err = s.Store.CountQueuedForms(ctx, s.DB); err != nil {
		return nil, err
	}
	return report, nil
}

// Status reports the active backend, connectivity, availability, and
// queue depth. Backends that implement Prober are probed; the rest are
// considered available whenever the service is online.
func (s *RegistrationService) Status(ctx context.Context) (*BackendStatus, error) {
	st := &BackendStatus{
		Backend: s.Submitter.Name(),
		Online:  s.Online(),
	}

	var err error
	if st.QueuedForms, err = s.Store.CountQueuedForms(ctx, s.DB); err != nil {
		return nil, err
	}

	if !st.Online {
		st.Available = false
		st.Message = "Offline mode - registrations will be stored locally"
		return st, nil
	}
	if p, ok := s.Submitter.(backend.Prober); ok {
		st.Available, st.Message = p.Probe(ctx)
		return st, nil
	}
	st.Available = true
	st.Message = "Backend available"
	return st, nil
}

// recordSuccess appends to the confirmed log and refreshes the
// last-submission snapshot. A duplicate registration ID means the entry
// was already recorded and is not an error.
func (s *RegistrationService) recordSuccess(ctx context.Context, reg *domain.Registration) error {
	if _, err := s.Store.AppendSubmission(ctx, s.DB, reg, s.Submitter.Name(), s.SuccessLogCap); err != nil {
		if !errors.Is(err, repo.ErrDuplicate) {
			return err
		}
		log.Debug().Str("registration_id", reg.RegistrationID).Msg("submission already recorded")
	}
	return s.Store.SetJSON(ctx, s.DB, repo.KeyLastSubmission, reg)
}

// failureMessage maps a delivery error to the user-facing text.
func failureMessage(err error) string {
	var te *backend.TransportError
	if errors.As(err, &te) {
		if te.Status != 0 {
			return "Submission failed. Please try again."
		}
		return "Network error. Please check your connection and try again."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out. Please try again."
	}
	return "Failed to submit registration"
}

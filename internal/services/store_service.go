// Package services – StoreService
//
// This file implements the StoreService, which manages the locally held
// registration state that is not itself a submission: the draft form, the
// selected material, the last-submission snapshot, aggregate statistics,
// and the full local reset. All of it lives in the key/value catalog and
// the capped record tables of the repo layer.
package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
	"github.com/ecopots/go-registration-backend/internal/search"
)

// materialNames maps catalog slugs whose display name cannot be derived
// by title-casing alone. Every other slug renders as its title-cased,
// hyphen-split form.
var materialNames = map[string]string{
	"ropes-strings": "Ropes & Strings",
}

// materialSlugs is the fixed selectable-material catalog.
var materialSlugs = []string{
	"plastic-bottles", "ropes-strings", "old-shoes",
	"glass-jars", "metal-cans", "other-materials",
}

var titleCaser = cases.Title(language.English)

// MaterialDisplayName renders a catalog slug as its user-facing name,
// e.g. "plastic-bottles" → "Plastic Bottles".
func MaterialDisplayName(slug string) string {
	if name, ok := materialNames[slug]; ok {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}

// KnownMaterial reports whether slug belongs to the fixed catalog.
func KnownMaterial(slug string) bool {
	for _, s := range materialSlugs {
		if s == slug {
			return true
		}
	}
	return false
}

// MaterialSelection pairs a catalog slug with its display name.
type MaterialSelection struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// StoreService provides draft, material, snapshot, statistics, and reset
// operations over locally held state.
type StoreService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewStoreService constructs a StoreService.
func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{DB: db}
}

// SaveDraft persists the in-progress form fields. Drafts are stored as
// typed, unvalidated input; a draft may be incomplete or invalid.
func (s *StoreService) SaveDraft(ctx context.Context, fields map[string]string) error {
	return repo.SetJSON(ctx, s.DB, repo.KeyDraftFormData, fields)
}

// Draft returns the stored draft fields, or ErrNotFound when no draft
// exists or the stored draft is unreadable.
func (s *StoreService) Draft(ctx context.Context) (map[string]string, error) {
	var fields map[string]string
	if err := repo.GetJSON(ctx, s.DB, repo.KeyDraftFormData, &fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fields, nil
}

// ClearDraft removes the stored draft. Clearing an absent draft is a
// no-op.
func (s *StoreService) ClearDraft(ctx context.Context) error {
	return repo.DeleteValue(ctx, s.DB, repo.KeyDraftFormData)
}

// SelectMaterial stores the chosen material slug. Slugs outside the fixed
// catalog are rejected with ErrUnknownMaterial.
func (s *StoreService) SelectMaterial(ctx context.Context, slug string) (*MaterialSelection, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !KnownMaterial(slug) {
		return nil, ErrUnknownMaterial
	}
	if err := repo.SetValue(ctx, s.DB, repo.KeySelectedMaterial, slug); err != nil {
		return nil, err
	}
	return &MaterialSelection{Slug: slug, Name: MaterialDisplayName(slug)}, nil
}

// SelectedMaterial returns the stored material selection, or ErrNotFound
// when none has been made.
func (s *StoreService) SelectedMaterial(ctx context.Context) (*MaterialSelection, error) {
	slug, err := repo.GetValue(ctx, s.DB, repo.KeySelectedMaterial)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &MaterialSelection{Slug: slug, Name: MaterialDisplayName(slug)}, nil
}

// LastSubmission returns the most recent confirmed registration. The
// key/value snapshot is authoritative; when it is missing or unreadable
// the submission log is consulted before giving up with ErrNotFound.
func (s *StoreService) LastSubmission(ctx context.Context) (*domain.Registration, error) {
	var reg domain.Registration
	err := repo.GetJSON(ctx, s.DB, repo.KeyLastSubmission, &reg)
	if err == nil {
		return &reg, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	rec, err := repo.LastSubmission(ctx, s.DB)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return repo.DecodeRegistration(rec.Payload, rec.RegistrationID)
}

// Registrations returns one page of the confirmed-submission log, newest
// first, with the total count. Rows whose stored payload is unreadable
// are skipped.
func (s *StoreService) Registrations(ctx context.Context, page, pageSize int) ([]domain.Registration, int64, error) {
	offset := (page - 1) * pageSize
	recs, total, err := repo.ListSubmissionsPage(ctx, s.DB, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}
	regs := make([]domain.Registration, 0, len(recs))
	for _, rec := range recs {
		reg, derr := repo.DecodeRegistration(rec.Payload, rec.RegistrationID)
		if derr != nil {
			continue
		}
		regs = append(regs, *reg)
	}
	return regs, total, nil
}

// Search runs a keyword query over the confirmed-submission log and returns
// up to k ranked matches. The index is rebuilt per call; the log is capped,
// so this stays cheap.
func (s *StoreService) Search(ctx context.Context, query string, k int) ([]search.Result, error) {
	recs, err := repo.ListSubmissions(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	regs := make([]domain.Registration, 0, len(recs))
	for _, rec := range recs {
		reg, derr := repo.DecodeRegistration(rec.Payload, rec.RegistrationID)
		if derr != nil {
			continue
		}
		regs = append(regs, *reg)
	}
	idx := search.NewIndex(search.Documents(regs))
	return idx.TopK(query, k), nil
}

// Stats returns the aggregate local submission counters.
func (s *StoreService) Stats(ctx context.Context) (*repo.Stats, error) {
	return repo.SubmissionStats(ctx, s.DB)
}

// ClearAll wipes every locally held record: submissions, queued forms,
// manual backups, drafts, and selections.
func (s *StoreService) ClearAll(ctx context.Context) error {
	return repo.ClearLocalData(ctx, s.DB)
}

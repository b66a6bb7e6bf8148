// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the fixed-catalog key/value store used
// for scalar and draft state, mirroring the original client's per-origin
// storage keys.
//
// Read semantics are fail-closed: malformed stored content is treated as
// absent and logged, never surfaced to the caller as an error. Writes are
// durable at call return (single-row upserts, no batching).
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecopots/go-registration-backend/internal/domain"
)

// The fixed key catalog. No dynamic namespacing: every persisted scalar or
// draft lives under one of these keys.
const (
	KeySelectedMaterial = "selected_material" // plain string scalar
	KeyDraftFormData    = "draft_form_data"   // JSON map of field → value
	KeyLastSubmission   = "last_submission"   // JSON-encoded Registration
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// SetValue upserts a raw string value under key.
func SetValue(ctx context.Context, db *gorm.DB, key, value string) error {
	entry := &domain.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(entry).Error
}

// GetValue returns the raw string stored under key, or ErrNotFound.
func GetValue(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var entry domain.KVEntry
	err := db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// DeleteValue removes the entry under key. Deleting an absent key is a no-op.
func DeleteValue(ctx context.Context, db *gorm.DB, key string) error {
	return db.WithContext(ctx).Where("key = ?", key).Delete(&domain.KVEntry{}).Error
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, db *gorm.DB, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return SetValue(ctx, db, key, string(raw))
}

// GetJSON loads the value under key into out. A missing key returns
// ErrNotFound; malformed stored JSON is logged and also reported as
// ErrNotFound so callers treat it as absent rather than fatal.
func GetJSON(ctx context.Context, db *gorm.DB, key string, out any) error {
	raw, err := GetValue(ctx, db, key)
	if err != nil {
		return err
	}
	if uerr := json.Unmarshal([]byte(raw), out); uerr != nil {
		log.Warn().Err(uerr).Str("key", key).Msg("discarding malformed stored value")
		return ErrNotFound
	}
	return nil
}

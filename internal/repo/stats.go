// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries
// over the submission log, retry queue, and backup log, consumed by the
// stats endpoint. Each function is context-aware and safe to call from
// services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/domain"
)

// Stats aggregates the local submission state: how many registrations were
// confirmed delivered, how many await retry, how many exist as manual
// backups, and when the last confirmed delivery happened.
type Stats struct {
	Successful     int64      `json:"successful"`
	Queued         int64      `json:"queued"`
	ManualBackups  int64      `json:"manual_backups"`
	Total          int64      `json:"total"`
	LastSuccessful *time.Time `json:"last_successful,omitempty"`
}

// SubmissionStats computes the aggregate counters in a handful of
// lightweight queries. When the submission log is empty LastSuccessful
// is nil.
func SubmissionStats(ctx context.Context, db *gorm.DB) (*Stats, error) {
	var s Stats
	var err error

	if s.Successful, err = CountSubmissions(ctx, db); err != nil {
		return nil, err
	}
	if s.Queued, err = CountQueuedForms(ctx, db); err != nil {
		return nil, err
	}
	if s.ManualBackups, err = CountBackups(ctx, db); err != nil {
		return nil, err
	}
	s.Total = s.Successful + s.Queued

	if s.Successful > 0 {
		// Get latest submitted_at (avoid MAX() -> TEXT in SQLite)
		var row struct {
			SubmittedAt time.Time
		}
		err = db.WithContext(ctx).Model(&domain.SubmissionRecord{}).
			Select("submitted_at").
			Order("seq DESC").
			Limit(1).
			Scan(&row).Error
		if err != nil {
			return nil, err
		}
		s.LastSuccessful = &row.SubmittedAt
	}
	return &s, nil
}

// ClearLocalData wipes all locally held registration state: the submission
// log, the retry queue, manual backups, and every key/value entry. Used by
// the admin reset operation.
func ClearLocalData(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&domain.SubmissionRecord{},
			&domain.StoredFormRecord{},
			&domain.ManualBackupRecord{},
			&domain.KVEntry{},
		} {
			if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

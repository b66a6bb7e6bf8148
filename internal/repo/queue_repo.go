// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the offline
// retry queue.
//
// The queue holds submissions that failed transport or were attempted
// while offline. It drains in insertion (Seq) order and is capped with
// oldest-first eviction, mirroring the original client's bounded local
// storage list.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/domain"
)

// EnqueueForm appends a registration to the retry queue and trims the
// queue to maxRecords (oldest first). retryCount carries over the number
// of attempts already made for this registration.
func EnqueueForm(ctx context.Context, db *gorm.DB, reg *domain.Registration, retryCount, maxRecords int) (*domain.StoredFormRecord, error) {
	payload, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}

	rec := &domain.StoredFormRecord{
		ID:             uuid.NewString(),
		RegistrationID: reg.RegistrationID,
		QueuedAt:       time.Now().UTC(),
		RetryCount:     retryCount,
		Payload:        string(payload),
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec.Seq = nextSeq(tx, &domain.StoredFormRecord{})
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return trimOldest(tx, &domain.StoredFormRecord{}, maxRecords)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListQueuedForms returns the queue in insertion order (oldest first),
// the order in which the drainer processes entries.
func ListQueuedForms(ctx context.Context, db *gorm.DB) ([]domain.StoredFormRecord, error) {
	var recs []domain.StoredFormRecord
	err := db.WithContext(ctx).Order("seq ASC").Find(&recs).Error
	return recs, err
}

// RemoveQueuedForm deletes a queue entry after a successful retry.
// Removing an absent entry is a no-op.
func RemoveQueuedForm(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&domain.StoredFormRecord{}).Error
}

// BumpRetryCount increments the retry counter of a queue entry after a
// failed drain attempt.
func BumpRetryCount(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Model(&domain.StoredFormRecord{}).
		Where("id = ?", id).
		UpdateColumn("retry_count", gorm.Expr("retry_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountQueuedForms returns the number of entries awaiting retry.
func CountQueuedForms(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.StoredFormRecord{}).Count(&n).Error
	return n, err
}

// RetryCountFor returns the retry count of the queued entry holding
// registrationID, or 0 when the registration is not queued.
func RetryCountFor(ctx context.Context, db *gorm.DB, registrationID string) (int, error) {
	var rec domain.StoredFormRecord
	err := db.WithContext(ctx).Where("registration_id = ?", registrationID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.RetryCount, nil
}

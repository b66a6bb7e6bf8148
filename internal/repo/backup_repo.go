// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for manual-entry
// backup records, the local-only fallback used when no live backend can
// accept a submission.
package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/domain"
)

// AppendBackup stores a manual-entry backup of reg together with the
// prefilled hosted-form URL an operator can use to re-enter it. The backup
// log is trimmed to maxRecords, oldest first.
func AppendBackup(ctx context.Context, db *gorm.DB, reg *domain.Registration, prefillURL string, maxRecords int) (*domain.ManualBackupRecord, error) {
	payload, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}

	rec := &domain.ManualBackupRecord{
		ID:             uuid.NewString(),
		RegistrationID: reg.RegistrationID,
		SavedAt:        time.Now().UTC(),
		PrefillURL:     prefillURL,
		Payload:        string(payload),
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec.Seq = nextSeq(tx, &domain.ManualBackupRecord{})
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return trimOldest(tx, &domain.ManualBackupRecord{}, maxRecords)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListBackups returns all manual backups in insertion order.
func ListBackups(ctx context.Context, db *gorm.DB) ([]domain.ManualBackupRecord, error) {
	var recs []domain.ManualBackupRecord
	err := db.WithContext(ctx).Order("seq ASC").Find(&recs).Error
	return recs, err
}

// CountBackups returns the number of manual backups held locally.
func CountBackups(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ManualBackupRecord{}).Count(&n).Error
	return n, err
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// successful-submission log.
//
// The log is append-only and capped: appending past the cap evicts the
// oldest rows first, in insertion (Seq) order. Each registration ID may
// appear at most once; a duplicate append is reported as ErrDuplicate so
// the service layer can treat the replay as already delivered.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/domain"
)

// ErrDuplicate indicates that a record with the same registration ID
// already exists.
var ErrDuplicate = errors.New("duplicate")

// AppendSubmission records a confirmed delivery in the submission log and
// trims the log to maxRecords (oldest first). The insert and eviction run
// in one transaction.
func AppendSubmission(ctx context.Context, db *gorm.DB, reg *domain.Registration, backendName string, maxRecords int) (*domain.SubmissionRecord, error) {
	payload, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}

	rec := &domain.SubmissionRecord{
		ID:             uuid.NewString(),
		RegistrationID: reg.RegistrationID,
		SubmittedAt:    time.Now().UTC(),
		Backend:        backendName,
		Payload:        string(payload),
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec.Seq = nextSeq(tx, &domain.SubmissionRecord{})
		if err := tx.Create(rec).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return trimOldest(tx, &domain.SubmissionRecord{}, maxRecords)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetSubmission returns the log entry for registrationID, or ErrNotFound.
func GetSubmission(ctx context.Context, db *gorm.DB, registrationID string) (*domain.SubmissionRecord, error) {
	var rec domain.SubmissionRecord
	err := db.WithContext(ctx).Where("registration_id = ?", registrationID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LastSubmission returns the most recently appended log entry, or
// ErrNotFound when the log is empty.
func LastSubmission(ctx context.Context, db *gorm.DB) (*domain.SubmissionRecord, error) {
	var rec domain.SubmissionRecord
	err := db.WithContext(ctx).Order("seq DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListSubmissionsPage returns one page of the submission log, newest first,
// along with the total count.
func ListSubmissionsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.SubmissionRecord, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(&domain.SubmissionRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recs []domain.SubmissionRecord
	err := db.WithContext(ctx).
		Order("seq DESC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// ListSubmissions returns the full submission log in insertion order
// (oldest first), as used by exports.
func ListSubmissions(ctx context.Context, db *gorm.DB) ([]domain.SubmissionRecord, error) {
	var recs []domain.SubmissionRecord
	err := db.WithContext(ctx).Order("seq ASC").Find(&recs).Error
	return recs, err
}

// CountSubmissions returns the number of entries in the submission log.
func CountSubmissions(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.SubmissionRecord{}).Count(&n).Error
	return n, err
}

// DecodeRegistration unpacks the JSON payload of a log or queue record.
// Malformed payloads are logged and reported as ErrNotFound so readers
// treat the record as absent (fail-closed) rather than erroring out.
func DecodeRegistration(payload, registrationID string) (*domain.Registration, error) {
	var reg domain.Registration
	if err := json.Unmarshal([]byte(payload), &reg); err != nil {
		log.Warn().Err(err).Str("registration_id", registrationID).Msg("discarding malformed stored payload")
		return nil, ErrNotFound
	}
	return &reg, nil
}

// nextSeq returns the next insertion-order sequence number for model.
// Callers must hold a transaction; there is a single logical writer, so
// MAX+1 is safe here.
func nextSeq(tx *gorm.DB, model any) uint64 {
	var max *uint64
	tx.Model(model).Select("MAX(seq)").Scan(&max)
	if max == nil {
		return 1
	}
	return *max + 1
}

// trimOldest deletes the oldest rows of model until at most maxRecords
// remain. A maxRecords <= 0 disables trimming.
func trimOldest(tx *gorm.DB, model any, maxRecords int) error {
	if maxRecords <= 0 {
		return nil
	}
	var total int64
	if err := tx.Model(model).Count(&total).Error; err != nil {
		return err
	}
	excess := int(total) - maxRecords
	if excess <= 0 {
		return nil
	}
	var seqs []uint64
	if err := tx.Model(model).Order("seq ASC").Limit(excess).Pluck("seq", &seqs).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("seq IN ?", seqs).Delete(model).Error
}

// isUniqueViolation detects unique-constraint errors across the error
// shapes the pure-Go SQLite driver produces.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}

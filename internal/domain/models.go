// Package domain defines the persistence models for registrations, the
// successful-submission log, the offline retry queue, and manual-entry
// backups. These types are mapped with GORM and form the core data layer
// of the registration backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Registration is one student's completed material-selection plus
// personal-details submission. All user-entered fields are strings; the
// derived fields Timestamp and RegistrationID are stamped by the service
// layer at submission time and are immutable afterwards.
//
// Fields:
//   - RegistrationID: unique token "ECO-<base36 ts>-<base36 rand>" (upper
//     case). Acts as the local dedup / idempotency key.
//   - Timestamp: submission time, serialized as RFC 3339 (ISO-8601).
//   - FullName..CraftDescription: the eight required form fields.
//   - SubmissionSource: fixed provenance marker written on every outbound
//     submission.
type Registration struct {
	RegistrationID   string    `json:"registration_id"`
	Timestamp        time.Time `json:"timestamp"`
	FullName         string    `json:"full_name"`
	RollNumber       string    `json:"roll_number"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Department       string    `json:"department"`
	YearOfStudy      string    `json:"year_of_study"`
	SelectedMaterial string    `json:"selected_material"`
	CraftDescription string    `json:"craft_description"`
	SubmissionSource string    `json:"submission_source,omitempty"`
}

// Fields returns the registration as a field-name → value map keyed by the
// canonical wire names. Derived fields are excluded; the map contains only
// what a user can type into the form.
func (r *Registration) Fields() map[string]string {
	return map[string]string{
		"full_name":         r.FullName,
		"roll_number":       r.RollNumber,
		"email":             r.Email,
		"phone":             r.Phone,
		"department":        r.Department,
		"year_of_study":     r.YearOfStudy,
		"selected_material": r.SelectedMaterial,
		"craft_description": r.CraftDescription,
	}
}

// SubmissionRecord is one entry of the append-only local log of confirmed
// submissions. The log is capped; appending past the cap evicts the oldest
// rows first (insertion order).
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - RegistrationID: dedup key, unique across the log.
//   - SubmittedAt: time the backend confirmed delivery.
//   - Backend: name of the backend that accepted the submission.
//   - Payload: the full Registration, JSON-encoded.
//   - Seq: monotonically increasing insertion order, used for FIFO eviction.
type SubmissionRecord struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	RegistrationID string         `json:"registration_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_submission_regid"`
	SubmittedAt    time.Time      `json:"submitted_at"`
	Backend        string         `json:"backend"         gorm:"type:varchar(32);not null"`
	Payload        string         `json:"-"               gorm:"type:text;not null"`
	Seq            uint64         `json:"-"               gorm:"not null;uniqueIndex:ux_submission_seq"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`
}

// TableName returns the database table name for SubmissionRecord.
func (SubmissionRecord) TableName() string { return "submissions" }

// StoredFormRecord is a submission that failed transport (or was attempted
// while offline) and awaits retry. Records drain in insertion order when
// connectivity returns; a record is removed once a retry succeeds. The
// queue is capped with oldest-first eviction.
type StoredFormRecord struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	RegistrationID string         `json:"registration_id" gorm:"type:varchar(64);not null;index"`
	QueuedAt       time.Time      `json:"queued_at"`
	RetryCount     int            `json:"retry_count"     gorm:"not null;default:0"`
	Payload        string         `json:"-"               gorm:"type:text;not null"`
	Seq            uint64         `json:"-"               gorm:"not null;uniqueIndex:ux_queue_seq"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`
}

// TableName returns the database table name for StoredFormRecord.
func (StoredFormRecord) TableName() string { return "queued_forms" }

// ManualBackupRecord is a local-only copy of a registration kept for manual
// re-entry into the hosted form. Written by the manual backend, never
// transmitted anywhere. Capped with oldest-first eviction.
type ManualBackupRecord struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	RegistrationID string         `json:"registration_id" gorm:"type:varchar(64);not null;index"`
	SavedAt        time.Time      `json:"saved_at"`
	PrefillURL     string         `json:"prefill_url"     gorm:"type:text"`
	Payload        string         `json:"-"               gorm:"type:text;not null"`
	Seq            uint64         `json:"-"               gorm:"not null;uniqueIndex:ux_backup_seq"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`
}

// TableName returns the database table name for ManualBackupRecord.
func (ManualBackupRecord) TableName() string { return "manual_backups" }

// KVEntry is one row of the fixed-catalog key/value store used for scalar
// and draft state (selected material, drafted form data, last submission).
// The key catalog is fixed at design time; there is no dynamic namespacing.
type KVEntry struct {
	Key       string    `gorm:"type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"type:DATETIME NOT NULL"`
}

// TableName returns the database table name for KVEntry.
func (KVEntry) TableName() string { return "kv_entries" }

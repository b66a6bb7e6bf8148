package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
)

// GormStore adapts the repository free functions to the RegistrationStore
// contract. It is the production implementation; tests may substitute
// their own.
type GormStore struct{}

func (GormStore) AppendSubmission(ctx context.Context, db *gorm.DB, reg *domain.Registration, backendName string, maxRecords int) (*domain.SubmissionRecord, error) {
	return repo.AppendSubmission(ctx, db, reg, backendName, maxRecords)
}

func (GormStore) EnqueueForm(ctx context.Context, db *gorm.DB, reg *domain.Registration, retryCount, maxRecords int) (*domain.StoredFormRecord, error) {
	return repo.EnqueueForm(ctx, db, reg, retryCount, maxRecords)
}

func (GormStore) ListQueuedForms(ctx context.Context, db *gorm.DB) ([]domain.StoredFormRecord, error) {
	return repo.ListQueuedForms(ctx, db)
}

func (GormStore) RemoveQueuedForm(ctx context.Context, db *gorm.DB, id string) error {
	return repo.RemoveQueuedForm(ctx, db, id)
}

func (GormStore) BumpRetryCount(ctx context.Context, db *gorm.DB, id string) error {
	return repo.BumpRetryCount(ctx, db, id)
}

func (GormStore) CountQueuedForms(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountQueuedForms(ctx, db)
}

func (GormStore) SetJSON(ctx context.Context, db *gorm.DB, key string, v any) error {
	return repo.SetJSON(ctx, db, key, v)
}

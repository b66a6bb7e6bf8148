package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestEnqueueForm_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		reg := sampleRegistration(fmt.Sprintf("ECO-Q-%05d", i))
		if _, err := EnqueueForm(ctx, db, reg, 0, 10); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	recs, err := ListQueuedForms(ctx, db)
	if err != nil {
		t.Fatalf("ListQueuedForms: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 queued forms, got %d", len(recs))
	}
	for i, rec := range recs {
		want := fmt.Sprintf("ECO-Q-%05d", i)
		if rec.RegistrationID != want {
			t.Fatalf("queue out of insertion order at %d: got %s want %s", i, rec.RegistrationID, want)
		}
	}
}

func TestEnqueueForm_CapEvictsOldest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	const cap = 10
	for i := 0; i < cap+2; i++ {
		reg := sampleRegistration(fmt.Sprintf("ECO-QCAP-%05d", i))
		if _, err := EnqueueForm(ctx, db, reg, 0, cap); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	recs, err := ListQueuedForms(ctx, db)
	if err != nil {
		t.Fatalf("ListQueuedForms: %v", err)
	}
	if len(recs) != cap {
		t.Fatalf("expected %d queued forms, got %d", cap, len(recs))
	}
	if recs[0].RegistrationID != "ECO-QCAP-00002" {
		t.Fatalf("expected two oldest entries evicted, head is %s", recs[0].RegistrationID)
	}
}

func TestRemoveQueuedForm(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec, err := EnqueueForm(ctx, db, sampleRegistration("ECO-RM-AAAAA"), 0, 10)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := RemoveQueuedForm(ctx, db, rec.ID); err != nil {
		t.Fatalf("RemoveQueuedForm: %v", err)
	}
	n, err := CountQueuedForms(ctx, db)
	if err != nil {
		t.Fatalf("CountQueuedForms: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty queue, got %d", n)
	}
	// Removing again is a no-op.
	if err := RemoveQueuedForm(ctx, db, rec.ID); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
}

func TestBumpRetryCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec, err := EnqueueForm(ctx, db, sampleRegistration("ECO-RC-AAAAA"), 1, 10)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := BumpRetryCount(ctx, db, rec.ID); err != nil {
		t.Fatalf("BumpRetryCount: %v", err)
	}

	n, err := RetryCountFor(ctx, db, "ECO-RC-AAAAA")
	if err != nil {
		t.Fatalf("RetryCountFor: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected retry count 2, got %d", n)
	}

	if err := BumpRetryCount(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing entry, got %v", err)
	}
}

func TestSubmissionStats_AndClear(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := AppendSubmission(ctx, db, sampleRegistration("ECO-S1-AAAAA"), "sheets", 50); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := EnqueueForm(ctx, db, sampleRegistration("ECO-S2-AAAAA"), 0, 10); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := AppendBackup(ctx, db, sampleRegistration("ECO-S3-AAAAA"), "https://forms.example/prefill", 25); err != nil {
		t.Fatalf("backup: %v", err)
	}

	stats, err := SubmissionStats(ctx, db)
	if err != nil {
		t.Fatalf("SubmissionStats: %v", err)
	}
	if stats.Successful != 1 || stats.Queued != 1 || stats.ManualBackups != 1 || stats.Total != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.LastSuccessful == nil || stats.LastSuccessful.IsZero() {
		t.Fatalf("expected LastSuccessful to be set")
	}

	if err := ClearLocalData(ctx, db); err != nil {
		t.Fatalf("ClearLocalData: %v", err)
	}
	stats, err = SubmissionStats(ctx, db)
	if err != nil {
		t.Fatalf("SubmissionStats after clear: %v", err)
	}
	if stats.Total != 0 || stats.ManualBackups != 0 || stats.LastSuccessful != nil {
		t.Fatalf("expected zeroed stats after clear, got %+v", stats)
	}
}

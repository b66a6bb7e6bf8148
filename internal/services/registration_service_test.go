package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecopots/go-registration-backend/internal/backend"
	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeSubmitter records every Send and returns a scripted error. failFor
// restricts failures to registrations whose roll number matches.
type fakeSubmitter struct {
	name    string
	err     error
	failFor string
	sent    []*domain.Registration
}

func (f *fakeSubmitter) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeSubmitter) Send(ctx context.Context, reg *domain.Registration) error {
	f.sent = append(f.sent, reg)
	if f.err != nil && (f.failFor == "" || f.failFor == reg.RollNumber) {
		return f.err
	}
	return nil
}

func newService(t *testing.T, sub backend.Submitter) (*RegistrationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewRegistrationService(db, GormStore{}, sub, 3, 50, 10), db
}

func validRegistration() *domain.Registration {
	return &domain.Registration{
		FullName:         "Priya Sharma",
		RollNumber:       "CS2023045",
		Email:            "priya@college.edu",
		Phone:            "9876543210",
		Department:       "CSE",
		YearOfStudy:      "2nd Year",
		SelectedMaterial: "Plastic Bottles",
		CraftDescription: "I will cut the bottles into planters, paint them with leftover acrylics and hang them on the balcony rail.",
	}
}

func TestSubmit_OnlineHappyPath(t *testing.T) {
	fake := &fakeSubmitter{}
	svc, db := newService(t, fake)
	ctx := context.Background()

	res, err := svc.Submit(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Success || res.OfflineMode {
		t.Fatalf("result = %+v, want online success", res)
	}
	if !domain.ValidRegistrationID(res.RegistrationID) {
		t.Errorf("registration id %q has wrong shape", res.RegistrationID)
	}
	if len(fake.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(fake.sent))
	}
	if fake.sent[0].SubmissionSource != backend.SubmissionSource {
		t.Errorf("submission source = %q", fake.sent[0].SubmissionSource)
	}

	if n, _ := repo.CountSubmissions(ctx, db); n != 1 {
		t.Errorf("submission log = %d, want 1", n)
	}
	var last domain.Registration
	if err := repo.GetJSON(ctx, db, repo.KeyLastSubmission, &last); err != nil {
		t.Fatalf("last submission snapshot: %v", err)
	}
	if last.RegistrationID != res.RegistrationID {
		t.Errorf("snapshot id = %q, want %q", last.RegistrationID, res.RegistrationID)
	}
}

func TestSubmit_ValidationRejected(t *testing.T) {
	fake := &fakeSubmitter{}
	svc, db := newService(t, fake)
	ctx := context.Background()

	reg := validRegistration()
	reg.Email = "not-an-email"
	reg.Phone = ""

	_, err := svc.Submit(ctx, reg)
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	var ve *ValidationError
	errors.As(err, &ve)
	if ve.Fields["email"] == "" {
		t.Errorf("missing email message: %v", ve.Fields)
	}
	if ve.Fields["phone"] != "This field is required" {
		t.Errorf("phone message = %q", ve.Fields["phone"])
	}

	if len(fake.sent) != 0 {
		t.Error("invalid registration was transmitted")
	}
	if n, _ := repo.CountSubmissions(ctx, db); n != 0 {
		t.Error("invalid registration was recorded")
	}
}

func TestSubmit_OfflineQueuesExactlyOne(t *testing.T) {
	fake := &fakeSubmitter{}
	svc, db := newService(t, fake)
	ctx := context.Background()

	if _, err := svc.SetOnline(ctx, false); err != nil {
		t.Fatalf("SetOnline: %v", err)
	}

	res, err := svc.Submit(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Success || !res.OfflineMode || !res.RetryAvailable {
		t.Fatalf("result = %+v, want queued offline success", res)
	}
	if len(fake.sent) != 0 {
		t.Error("offline submission reached the backend")
	}
	if n, _ := repo.CountQueuedForms(ctx, db); n != 1 {
		t.Errorf("queue depth = %d, want 1", n)
	}
	if n, _ := repo.CountSubmissions(ctx, db); n != 0 {
		t.Error("offline submission entered the confirmed log")
	}
}

func TestSubmit_TransportFailureQueues(t *testing.T) {
	fake := &fakeSubmitter{err: &backend.TransportError{Backend: "fake", Status: 502, Err: errors.New("bad gateway")}}
	svc, db := newService(t, fake)
	ctx := context.Background()

	res, err := svc.Submit(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Success {
		t.Fatal("failed delivery reported success")
	}
	if !res.RetryAvailable {
		t.Error("retry should remain available")
	}
	if n, _ := repo.CountQueuedForms(ctx, db); n != 1 {
		t.Errorf("queue depth = %d, want 1", n)
	}
}

func TestSubmit_NotConfiguredNeverQueued(t *testing.T) {
	fake := &fakeSubmitter{err: backend.ErrNotConfigured}
	svc, db := newService(t, fake)
	ctx := context.Background()

	res, err := svc.Submit(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Success || res.RetryAvailable {
		t.Fatalf("result = %+v, want permanent failure", res)
	}
	if n, _ := repo.CountQueuedForms(ctx, db); n != 0 {
		t.Error("configuration failure was queued")
	}
}

func TestSetOnline_TransitionDrainsQueue(t *testing.T) {
	fake := &fakeSubmitter{}
	svc, db := newService(t, fake)
	ctx := context.Background()

	if _, err := svc.SetOnline(ctx, false); err != nil {
		t.Fatalf("SetOnline(false): %v", err)
	}
	first := validRegistration()
	second := validRegistration()
	second.RollNumber = "EC2023110"
	if _, err := svc.Submit(ctx, first); err != nil {
		t.Fatalf("submit first: %v", err)
	}
	if _, err := svc.Submit(ctx, second); err != nil {
		t.Fatalf("submit second: %v", err)
	}

	report, err := svc.SetOnline(ctx, true)
	if err != nil {
		t.Fatalf("SetOnline(true): %v", err)
	}
	if report == nil || report.Attempted != 2 || report.Delivered != 2 || report.Remaining != 0 {
		t.Fatalf("report = %+v, want 2 delivered, 0 remaining", report)
	}
	// Insertion order preserved.
	if len(fake.sent) != 2 || fake.sent[0].RollNumber != "CS2023045" || fake.sent[1].RollNumber != "EC2023110" {
		t.Errorf("drain order wrong: %d sent", len(fake.sent))
	}
	if n, _ := repo.CountSubmissions(ctx, db); n != 2 {
		t.Errorf("submission log = %d, want 2", n)
	}

	// Staying online does not drain again.
	report, err = svc.SetOnline(ctx, true)
	if err != nil {
		t.Fatalf("SetOnline(true) again: %v", err)
	}
	if report != nil {
		t.Errorf("repeat transition produced a report: %+v", report)
	}
}

func TestDrainQueue_EmptyIsIdempotent(t *testing.T) {
	svc, _ := newService(t, &fakeSubmitter{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		report, err := svc.DrainQueue(ctx)
		if err != nil {
			t.Fatalf("DrainQueue #%d: %v", i+1, err)
		}
		if report.Attempted != 0 || report.Delivered != 0 || report.Remaining != 0 {
			t.Fatalf("report = %+v, want all zero", report)
		}
	}
}

func TestDrainQueue_FailureDoesNotBlockLaterEntries(t *testing.T) {
	fake := &fakeSubmitter{
		err:     &backend.TransportError{Backend: "fake", Err: errors.New("refused")},
		failFor: "CS2023045",
	}
	svc, db := newService(t, fake)
	ctx := context.Background()

	if _, err := svc.SetOnline(ctx, false); err != nil {
		t.Fatalf("SetOnline: %v", err)
	}
	blocked := validRegistration()
	passing := validRegistration()
	passing.RollNumber = "EC2023110"
	if _, err := svc.Submit(ctx, blocked); err != nil {
		t.Fatalf("submit blocked: %v", err)
	}
	if _, err := svc.Submit(ctx, passing); err != nil {
		t.Fatalf("submit passing: %v", err)
	}

	report, err := svc.SetOnline(ctx, true)
	if err != nil {
		t.Fatalf("SetOnline(true): %v", err)
	}
	if report.Attempted != 2 || report.Delivered != 1 || report.Remaining != 1 {
		t.Fatalf("report = %+v, want 1 delivered, 1 remaining", report)
	}

	forms, err := repo.ListQueuedForms(ctx, db)
	if err != nil {
		t.Fatalf("ListQueuedForms: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("queue = %d entries", len(forms))
	}
	if forms[0].RetryCount != 1 {
		t.Errorf("retry count = %d, want 1", forms[0].RetryCount)
	}
}

func TestStatus(t *testing.T) {
	fake := &fakeSubmitter{name: "sheets"}
	svc, _ := newService(t, fake)
	ctx := context.Background()

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Backend != "sheets" || !st.Online || !st.Available {
		t.Errorf("status = %+v", st)
	}

	if _, err := svc.SetOnline(ctx, false); err != nil {
		t.Fatalf("SetOnline: %v", err)
	}
	st, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status offline: %v", err)
	}
	if st.Online || st.Available {
		t.Errorf("offline status = %+v", st)
	}
	if !strings.Contains(st.Message, "Offline") {
		t.Errorf("offline message = %q", st.Message)
	}
}

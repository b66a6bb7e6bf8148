package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecopots/go-registration-backend/internal/config"
	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:backendtest_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.SubmissionRecord{},
		&domain.StoredFormRecord{},
		&domain.ManualBackupRecord{},
		&domain.KVEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleRegistration() *domain.Registration {
	return &domain.Registration{
		RegistrationID:   "ECO-TEST123-AB12C",
		Timestamp:        time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		FullName:         "Priya Sharma",
		RollNumber:       "CS2023045",
		Email:            "priya@college.edu",
		Phone:            "9876543210",
		Department:       "Computer Science",
		YearOfStudy:      "2nd Year",
		SelectedMaterial: "plastic-bottles",
		CraftDescription: strings.Repeat("Plan to build a vertical herb garden. ", 3),
		SubmissionSource: SubmissionSource,
	}
}

func TestSheetsSendSuccess(t *testing.T) {
	var got sheetsEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(sheetsReply{Success: true, Message: "recorded"})
	}))
	defer srv.Close()

	s := NewSheets(config.SheetsConfig{
		ScriptURL:     srv.URL,
		SpreadsheetID: "sheet-1",
		SheetName:     "Registrations",
	}, 5*time.Second)

	if err := s.Send(context.Background(), sampleRegistration()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Action != "submitRegistration" {
		t.Errorf("action = %q", got.Action)
	}
	if got.SpreadsheetID != "sheet-1" || got.SheetName != "Registrations" {
		t.Errorf("sheet routing = %q/%q", got.SpreadsheetID, got.SheetName)
	}
	if got.Data == nil || got.Data.RegistrationID != "ECO-TEST123-AB12C" {
		t.Errorf("data payload = %+v", got.Data)
	}
}

func TestSheetsSendRejectedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheetsReply{Success: false, Message: "duplicate row"})
	}))
	defer srv.Close()

	s := NewSheets(config.SheetsConfig{ScriptURL: srv.URL}, 5*time.Second)
	err := s.Send(context.Background(), sampleRegistration())
	if !IsTransport(err) {
		t.Fatalf("err = %v, want transport error", err)
	}
	if !strings.Contains(err.Error(), "duplicate row") {
		t.Errorf("err = %v, want remote message surfaced", err)
	}
}

func TestSheetsSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewSheets(config.SheetsConfig{ScriptURL: srv.URL}, 5*time.Second)
	err := s.Send(context.Background(), sampleRegistration())

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if te.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", te.Status)
	}
}

func TestSheetsSendUnconfigured(t *testing.T) {
	s := NewSheets(config.SheetsConfig{}, 5*time.Second)
	if err := s.Send(context.Background(), sampleRegistration()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if IsTransport(ErrNotConfigured) {
		t.Error("configuration errors must not look retryable")
	}
}

func TestSheetsProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env sheetsEnvelope
		_ = json.NewDecoder(r.Body).Decode(&env)
		if env.Action != "ping" {
			t.Errorf("probe action = %q", env.Action)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSheets(config.SheetsConfig{ScriptURL: srv.URL}, 5*time.Second)
	ok, msg := s.Probe(context.Background())
	if !ok {
		t.Fatalf("Probe = false, %q", msg)
	}

	s = NewSheets(config.SheetsConfig{}, 5*time.Second)
	if ok, _ := s.Probe(context.Background()); ok {
		t.Error("unconfigured backend probed available")
	}
}

func TestHostedFormSend(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var err error
		form, err = url.ParseQuery(string(body))
		if err != nil {
			t.Errorf("parse form: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h := NewHostedForm(config.HostedFormConfig{
		Endpoint: srv.URL,
		FormName: "ecopots-registration",
	}, 5*time.Second)

	if err := h.Send(context.Background(), sampleRegistration()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if form.Get("form-name") != "ecopots-registration" {
		t.Errorf("form-name = %q", form.Get("form-name"))
	}
	if form.Get("full_name") != "Priya Sharma" {
		t.Errorf("full_name = %q", form.Get("full_name"))
	}
	if form.Get("registration_id") != "ECO-TEST123-AB12C" {
		t.Errorf("registration_id = %q", form.Get("registration_id"))
	}
	if form.Get("submission_source") != SubmissionSource {
		t.Errorf("submission_source = %q", form.Get("submission_source"))
	}
}

func TestHostedFormSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	h := NewHostedForm(config.HostedFormConfig{Endpoint: srv.URL, FormName: "f"}, 5*time.Second)
	if err := h.Send(context.Background(), sampleRegistration()); !IsTransport(err) {
		t.Fatalf("err = %v, want transport error", err)
	}

	h = NewHostedForm(config.HostedFormConfig{}, 5*time.Second)
	if err := h.Send(context.Background(), sampleRegistration()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestManualSend(t *testing.T) {
	db := newTestDB(t)
	m := NewManual(db, "https://forms.example.com/r/abc", 25)

	reg := sampleRegistration()
	if err := m.Send(context.Background(), reg); err != nil {
		t.Fatalf("Send: %v", err)
	}

	backups, err := repo.ListBackups(context.Background(), db)
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("backups = %d, want 1", len(backups))
	}
	if backups[0].RegistrationID != reg.RegistrationID {
		t.Errorf("registration id = %q", backups[0].RegistrationID)
	}
	u, err := url.Parse(backups[0].PrefillURL)
	if err != nil {
		t.Fatalf("prefill URL: %v", err)
	}
	q := u.Query()
	if q.Get("entry.1") != "Priya Sharma" || q.Get("entry.7") != "plastic-bottles" {
		t.Errorf("prefill params = %v", q)
	}
}

func TestManualPrefillURLWithoutForm(t *testing.T) {
	m := NewManual(nil, "", 25)
	if got := m.PrefillURL(sampleRegistration()); got != "" {
		t.Errorf("PrefillURL = %q, want empty", got)
	}
	if ok, _ := m.Probe(context.Background()); !ok {
		t.Error("manual backend must always be available")
	}
}

func TestSelect(t *testing.T) {
	db := newTestDB(t)
	cases := []struct {
		backend string
		want    string
	}{
		{config.BackendSheets, config.BackendSheets},
		{config.BackendHostedForm, config.BackendHostedForm},
		{config.BackendManual, config.BackendManual},
	}
	for _, tc := range cases {
		cfg := &config.Config{Backend: tc.backend, SubmitTimeout: time.Second, ManualBackupCap: 25}
		sub, err := Select(cfg, db)
		if err != nil {
			t.Fatalf("Select(%s): %v", tc.backend, err)
		}
		if sub.Name() != tc.want {
			t.Errorf("Select(%s).Name() = %q", tc.backend, sub.Name())
		}
	}

	if _, err := Select(&config.Config{Backend: "smtp"}, db); err == nil {
		t.Error("unknown backend accepted")
	}
}

package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so tests observe defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED",
		"API_BASE_PATH", "DB_PATH", "SUBMIT_BACKEND", "SUBMIT_TIMEOUT", "MAX_RETRIES",
		"SUCCESS_LOG_CAP", "RETRY_QUEUE_CAP", "MANUAL_BACKUP_CAP",
		"SHEETS_SCRIPT_URL", "SHEETS_SPREADSHEET_ID", "SHEETS_SHEET_NAME",
		"HOSTED_FORM_ENDPOINT", "HOSTED_FORM_NAME",
		"RATE_RPS", "RATE_BURST", "CORS_ALLOWED_ORIGINS",
		"ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("default port: %q", cfg.Port)
	}
	if cfg.Backend != BackendSheets {
		t.Fatalf("default backend: %q", cfg.Backend)
	}
	if cfg.SubmitTimeout != 30*time.Second {
		t.Fatalf("default submit timeout: %v", cfg.SubmitTimeout)
	}
	if cfg.SuccessLogCap != 50 || cfg.RetryQueueCap != 10 || cfg.ManualBackupCap != 25 {
		t.Fatalf("default caps: %d/%d/%d", cfg.SuccessLogCap, cfg.RetryQueueCap, cfg.ManualBackupCap)
	}
	if cfg.MaxRetries != 3 {
		t.Fatalf("default max retries: %d", cfg.MaxRetries)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("default base path: %q", cfg.APIBasePath)
	}
	if cfg.Sheets.SheetName != "EcoPots_Student_Registrations" {
		t.Fatalf("default sheet name: %q", cfg.Sheets.SheetName)
	}
	if cfg.HostedForm.FormName != "ecopots-registration" {
		t.Fatalf("default form name: %q", cfg.HostedForm.FormName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUBMIT_BACKEND", "HOSTEDFORM")
	t.Setenv("HOSTED_FORM_ENDPOINT", "https://forms.example/post")
	t.Setenv("SUBMIT_TIMEOUT", "5s")
	t.Setenv("SUCCESS_LOG_CAP", "7")
	t.Setenv("API_BASE_PATH", "api/v2/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendHostedForm {
		t.Fatalf("backend not normalized: %q", cfg.Backend)
	}
	if cfg.HostedForm.Endpoint != "https://forms.example/post" {
		t.Fatalf("endpoint: %q", cfg.HostedForm.Endpoint)
	}
	if cfg.SubmitTimeout != 5*time.Second {
		t.Fatalf("submit timeout: %v", cfg.SubmitTimeout)
	}
	if cfg.SuccessLogCap != 7 {
		t.Fatalf("success cap: %d", cfg.SuccessLogCap)
	}
	if cfg.APIBasePath != "/api/v2" {
		t.Fatalf("base path not normalized: %q", cfg.APIBasePath)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := []struct {
		key, val, wantSub string
	}{
		{"SUBMIT_BACKEND", "carrier-pigeon", "SUBMIT_BACKEND"},
		{"LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"SUCCESS_LOG_CAP", "0", "store caps"},
		{"RETRY_QUEUE_CAP", "-1", "store caps"},
		{"RATE_BURST", "0", "RATE_BURST"},
		{"MAX_RETRIES", "-2", "MAX_RETRIES"},
		{"OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil || !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantSub, err)
			}
		})
	}
}

func TestLoad_WarningAliasesWarn(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warning")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected warn, got %q", cfg.LogLevel)
	}
}

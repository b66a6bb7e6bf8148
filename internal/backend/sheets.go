// Spreadsheet-macro backend.
//
// Delivers registrations to a deployed spreadsheet macro endpoint as a
// single JSON POST:
//
//	{ "action": "submitRegistration", "data": {...}, "spreadsheetId": "...", "sheetName": "..." }
//
// and expects a JSON reply { "success": bool, "message": "..." }. Any
// transport-level failure (network error, timeout, non-2xx) and any
// success=false reply are retryable TransportErrors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ecopots/go-registration-backend/internal/config"
	"github.com/ecopots/go-registration-backend/internal/domain"
)

const actionSubmit = "submitRegistration"

// Sheets submits registrations to the spreadsheet-macro endpoint.
type Sheets struct {
	cfg    config.SheetsConfig
	client *http.Client
}

// NewSheets constructs the spreadsheet backend. timeout bounds each
// transport attempt; after it elapses the attempt is treated as failed
// (no automatic retry within the same call).
func NewSheets(cfg config.SheetsConfig, timeout time.Duration) *Sheets {
	return &Sheets{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Name implements Submitter.
func (s *Sheets) Name() string { return config.BackendSheets }

// sheetsEnvelope is the wire payload of the macro endpoint.
type sheetsEnvelope struct {
	Action        string               `json:"action"`
	Data          *domain.Registration `json:"data,omitempty"`
	SpreadsheetID string               `json:"spreadsheetId,omitempty"`
	SheetName     string               `json:"sheetName,omitempty"`
	Timestamp     string               `json:"timestamp,omitempty"`
}

// sheetsReply is the macro endpoint's JSON response.
type sheetsReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send implements Submitter.
func (s *Sheets) Send(ctx context.Context, reg *domain.Registration) error {
	if strings.TrimSpace(s.cfg.ScriptURL) == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sheetsEnvelope{
		Action:        actionSubmit,
		Data:          reg,
		SpreadsheetID: s.cfg.SpreadsheetID,
		SheetName:     s.cfg.SheetName,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ScriptURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &TransportError{Backend: s.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Backend: s.Name(), Status: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	var reply sheetsReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return &TransportError{Backend: s.Name(), Err: err}
	}
	if !reply.Success {
		msg := reply.Message
		if msg == "" {
			msg = "submission rejected"
		}
		return &TransportError{Backend: s.Name(), Err: errors.New(msg)}
	}
	return nil
}

// Probe implements Prober with a short "ping" action against the macro
// endpoint.
func (s *Sheets) Probe(ctx context.Context) (bool, string) {
	if strings.TrimSpace(s.cfg.ScriptURL) == "" {
		return false, "script URL not configured"
	}

	body, _ := json.Marshal(sheetsEnvelope{
		Action:    "ping",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ScriptURL, bytes.NewReader(body))
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, "service check failed"
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return true, "service available"
	}
	return false, "service unavailable"
}

// Hosted-forms backend.
//
// Delivers registrations to a hosted-forms provider as a single
// form-encoded POST carrying every registration field plus the fixed
// form-identifier field. Any 2xx status counts as acceptance; the
// provider sends no structured reply body worth parsing.
package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ecopots/go-registration-backend/internal/config"
	"github.com/ecopots/go-registration-backend/internal/domain"
)

// formNameField is the fixed identifier field the provider uses to route
// submissions to the right form.
const formNameField = "form-name"

// HostedForm submits registrations to the hosted-forms endpoint.
type HostedForm struct {
	cfg    config.HostedFormConfig
	client *http.Client
}

// NewHostedForm constructs the hosted-forms backend with a bounded
// per-attempt timeout.
func NewHostedForm(cfg config.HostedFormConfig, timeout time.Duration) *HostedForm {
	return &HostedForm{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Name implements Submitter.
func (h *HostedForm) Name() string { return config.BackendHostedForm }

// Send implements Submitter.
func (h *HostedForm) Send(ctx context.Context, reg *domain.Registration) error {
	if strings.TrimSpace(h.cfg.Endpoint) == "" {
		return ErrNotConfigured
	}

	form := url.Values{}
	for name, value := range reg.Fields() {
		form.Set(name, value)
	}
	form.Set("registration_id", reg.RegistrationID)
	form.Set("timestamp", reg.Timestamp.UTC().Format(time.RFC3339))
	form.Set("submission_source", SubmissionSource)
	form.Set(formNameField, h.cfg.FormName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.Endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return &TransportError{Backend: h.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Backend: h.Name(), Status: resp.StatusCode, Err: errors.New(resp.Status)}
	}
	return nil
}

// Probe implements Prober. The provider has no ping action; configuration
// presence is the only meaningful check.
func (h *HostedForm) Probe(ctx context.Context) (bool, string) {
	if strings.TrimSpace(h.cfg.Endpoint) == "" {
		return false, "endpoint not configured"
	}
	return true, "hosted form available"
}

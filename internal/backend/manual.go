// Manual fallback backend.
//
// When no remote endpoint is reachable or configured, registrations are
// preserved locally as backup records together with a prefill URL the
// operator can open to re-enter the data into the hosted form by hand.
package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/config"
	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
)

// Manual records registrations locally instead of transmitting them.
type Manual struct {
	db        *gorm.DB
	formURL   string
	maxBackup int
}

// NewManual constructs the manual backend. formURL is the hosted form
// address used to build prefill links; it may be empty, in which case
// backups carry no link.
func NewManual(db *gorm.DB, formURL string, maxBackup int) *Manual {
	return &Manual{db: db, formURL: formURL, maxBackup: maxBackup}
}

// Name implements Submitter.
func (m *Manual) Name() string { return config.BackendManual }

// Send implements Submitter. It never fails on transport grounds; the
// only errors are local storage errors.
func (m *Manual) Send(ctx context.Context, reg *domain.Registration) error {
	if _, err := repo.AppendBackup(ctx, m.db, reg, m.PrefillURL(reg), m.maxBackup); err != nil {
		return fmt.Errorf("manual backup: %w", err)
	}
	return nil
}

// Probe implements Prober. Local storage is always reachable.
func (m *Manual) Probe(ctx context.Context) (bool, string) {
	return true, "manual backup available"
}

// PrefillURL builds a link to the hosted form with every answer slot
// pre-populated. The slot numbering follows the form's field order.
func (m *Manual) PrefillURL(reg *domain.Registration) string {
	if strings.TrimSpace(m.formURL) == "" {
		return ""
	}
	params := url.Values{}
	params.Set("entry.1", reg.FullName)
	params.Set("entry.2", reg.RollNumber)
	params.Set("entry.3", reg.Email)
	params.Set("entry.4", reg.Phone)
	params.Set("entry.5", reg.Department)
	params.Set("entry.6", reg.YearOfStudy)
	params.Set("entry.7", reg.SelectedMaterial)
	params.Set("entry.8", reg.CraftDescription)

	sep := "?"
	if strings.Contains(m.formURL, "?") {
		sep = "&"
	}
	return m.formURL + sep + params.Encode()
}

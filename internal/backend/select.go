package backend

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/config"
)

// Select returns the single submitter named by cfg.Backend. Exactly one
// backend is active per process; switching backends is a configuration
// change, not a runtime decision.
func Select(cfg *config.Config, db *gorm.DB) (Submitter, error) {
	switch cfg.Backend {
	case config.BackendSheets:
		return NewSheets(cfg.Sheets, cfg.SubmitTimeout), nil
	case config.BackendHostedForm:
		return NewHostedForm(cfg.HostedForm, cfg.SubmitTimeout), nil
	case config.BackendManual:
		return NewManual(db, cfg.HostedForm.Endpoint, cfg.ManualBackupCap), nil
	default:
		return nil, fmt.Errorf("unknown submit backend %q", cfg.Backend)
	}
}

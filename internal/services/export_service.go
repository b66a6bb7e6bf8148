// Package services – ExportService
//
// This file implements the ExportService, which renders locally recorded
// registrations as downloadable artifacts: a CSV file of every confirmed
// submission, and a plain-text summary of the most recent one. Both
// formats are fixed; column order and section layout never depend on the
// data.
package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
)

// csvHeader is the fixed column set of the submissions export.
var csvHeader = []string{
	"Registration ID",
	"Timestamp",
	"Full Name",
	"Roll Number",
	"Email Address",
	"Department",
	"Phone Number",
	"Year of Study",
	"Selected Material",
	"Craft Description",
	"Status",
	"Submission Source",
}

// ExportService renders confirmed submissions for download.
type ExportService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewExportService constructs an ExportService.
func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

// CSVFilename returns the canonical attachment name for an export
// generated at now.
func (s *ExportService) CSVFilename(now time.Time) string {
	return fmt.Sprintf("ecopots_registrations_%s.csv", now.UTC().Format("2006-01-02"))
}

// WriteCSV streams every confirmed submission to w as CSV, oldest first,
// header row included. Rows whose stored payload is unreadable are
// skipped. Returns the number of rows written.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	records, err := repo.ListSubmissions(ctx, s.DB)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}

	written := 0
	for _, rec := range records {
		reg, derr := repo.DecodeRegistration(rec.Payload, rec.RegistrationID)
		if derr != nil {
			continue
		}
		row := []string{
			reg.RegistrationID,
			reg.Timestamp.UTC().Format(time.RFC3339),
			reg.FullName,
			reg.RollNumber,
			reg.Email,
			reg.Department,
			reg.Phone,
			reg.YearOfStudy,
			reg.SelectedMaterial,
			reg.CraftDescription,
			"Submitted",
			reg.SubmissionSource,
		}
		if err := cw.Write(row); err != nil {
			return written, err
		}
		written++
	}

	cw.Flush()
	return written, cw.Error()
}

// SummaryFilename returns the canonical attachment name for a summary of
// reg.
func (s *ExportService) SummaryFilename(reg *domain.Registration) string {
	return fmt.Sprintf("EcoPots_Registration_%s.txt", reg.RegistrationID)
}

// Summary renders a registration as the plain-text confirmation handed to
// the student.
func (s *ExportService) Summary(reg *domain.Registration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Eco-Pots Registration Summary\n")
	fmt.Fprintf(&b, "=============================\n")
	fmt.Fprintf(&b, "Registration ID: %s\n", reg.RegistrationID)
	fmt.Fprintf(&b, "Registration Date: %s\n\n", reg.Timestamp.UTC().Format("January 2, 2006 15:04"))
	fmt.Fprintf(&b, "Personal Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", reg.FullName)
	fmt.Fprintf(&b, "- Roll Number: %s\n", reg.RollNumber)
	fmt.Fprintf(&b, "- Email: %s\n", reg.Email)
	fmt.Fprintf(&b, "- Phone: %s\n\n", reg.Phone)
	fmt.Fprintf(&b, "Academic Details:\n")
	fmt.Fprintf(&b, "- Department: %s\n", reg.Department)
	fmt.Fprintf(&b, "- Year of Study: %s\n\n", reg.YearOfStudy)
	fmt.Fprintf(&b, "Project Details:\n")
	fmt.Fprintf(&b, "- Selected Material: %s\n", reg.SelectedMaterial)
	fmt.Fprintf(&b, "- Craft Description: %s\n\n", reg.CraftDescription)
	fmt.Fprintf(&b, "Thank you for joining the Eco-Pots initiative!\n")
	return b.String()
}

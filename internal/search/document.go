package search

import (
	"strings"

	"github.com/ecopots/go-registration-backend/internal/domain"
)

// DocumentFor flattens a registration into one searchable document. Field
// order puts the most identifying values first so snippets read naturally.
func DocumentFor(reg *domain.Registration) Document {
	if reg == nil {
		return Document{}
	}
	parts := []string{
		reg.FullName,
		reg.RollNumber,
		reg.Department,
		reg.YearOfStudy,
		reg.SelectedMaterial,
		reg.CraftDescription,
	}
	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(p)
	}
	return Document{ID: reg.RegistrationID, Text: b.String()}
}

// Documents maps a batch of registrations, skipping empty ones.
func Documents(regs []domain.Registration) []Document {
	out := make([]Document, 0, len(regs))
	for i := range regs {
		d := DocumentFor(&regs[i])
		if d.Text == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}

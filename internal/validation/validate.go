// Package validation implements the pure field-validation engine for
// registration forms. It maps a field name and value to a pass/fail result
// plus a human-readable message, using a fixed per-field rule table.
//
// The engine has no side effects and no dependencies on transport or
// persistence: the same (name, value) pair always yields the same result.
// Rendering of error messages (inline text, CSS state, focus) is the
// caller's concern.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Canonical field names. These match the wire (JSON) names used by the
// HTTP layer and the persistence payloads.
const (
	FieldFullName         = "full_name"
	FieldRollNumber       = "roll_number"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldDepartment       = "department"
	FieldYearOfStudy      = "year_of_study"
	FieldSelectedMaterial = "selected_material"
	FieldCraftDescription = "craft_description"
)

// RequiredFields lists every field a complete registration must carry,
// in the canonical column order used by exports.
var RequiredFields = []string{
	FieldFullName,
	FieldRollNumber,
	FieldEmail,
	FieldPhone,
	FieldDepartment,
	FieldYearOfStudy,
	FieldSelectedMaterial,
	FieldCraftDescription,
}

// Result is the outcome of validating a single field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Rule is a per-field constraint specification. Absent constraints mean
// "unconstrained": a field is valid iff all present constraints hold.
type Rule struct {
	// Pattern, when non-nil, must match the whole value.
	Pattern *regexp.Regexp
	// MinLength / MaxLength bound the value length in runes; zero means
	// unbounded on that side.
	MinLength int
	MaxLength int
	// OneOf, when non-empty, restricts the value to an enumerated set.
	OneOf []string
	// Message is the failure text shown when a constraint is violated.
	Message string
}

// Departments is the fixed set of valid department values.
var Departments = []string{"CSE", "ECE", "EEE", "Mechanical", "Civil", "Chemical", "Others"}

// Years is the fixed set of valid year-of-study values.
var Years = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

// Materials is the fixed set of selectable waste materials.
var Materials = []string{
	"Plastic Bottles", "Ropes & Strings", "Old Shoes",
	"Glass Jars", "Metal Cans", "Other Materials",
}

// rules is the fixed validation table, one entry per known field.
var rules = map[string]Rule{
	FieldFullName: {
		Pattern:   regexp.MustCompile(`^[a-zA-Z\s]+$`),
		MinLength: 2,
		MaxLength: 50,
		Message:   "Name must contain only letters and spaces (2-50 characters)",
	},
	FieldRollNumber: {
		Pattern:   regexp.MustCompile(`^[A-Za-z0-9]+$`),
		MinLength: 5,
		MaxLength: 20,
		Message:   "Roll number must be alphanumeric (5-20 characters)",
	},
	FieldEmail: {
		Pattern: regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
		Message: "Please enter a valid email address",
	},
	FieldPhone: {
		Pattern: regexp.MustCompile(`^[0-9]{10}$`),
		Message: "Please enter a valid 10-digit mobile number",
	},
	FieldDepartment: {
		OneOf:   Departments,
		Message: "Please select a valid department",
	},
	FieldYearOfStudy: {
		OneOf:   Years,
		Message: "Please select a valid year of study",
	},
	FieldSelectedMaterial: {
		OneOf:   Materials,
		Message: "Invalid material selected",
	},
	FieldCraftDescription: {
		MinLength: 50,
		MaxLength: 500,
		Message:   "Description must be between 50 and 500 characters",
	},
}

// hasRepeatedRun reports whether text contains five or more identical
// consecutive runes.
func hasRepeatedRun(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= 5 {
				return true
			}
			continue
		}
		prev = r
		run = 1
	}
	return false
}

// blocklist holds case-insensitive substrings that mark a description as
// low-effort filler.
var blocklist = []string{"test", "asdf", "qwerty", "12345", "aaaa", "bbbb"}

// ValidateField validates one field value against the fixed rule table.
// Unknown field names are accepted unchanged (unconstrained). The empty/
// required check belongs to ValidateForm; ValidateField applies only the
// per-field constraints.
func ValidateField(name, value string) Result {
	rule, ok := rules[name]
	if !ok {
		return Result{Valid: true}
	}
	return Check(name, value, rule)
}

// Check validates value against an explicit rule. It is the lower-level
// entry point used by ValidateField and by callers carrying ad-hoc
// constraint sets.
func Check(name, value string, rule Rule) Result {
	n := len([]rune(value))
	if rule.MinLength > 0 && n < rule.MinLength {
		if name == FieldCraftDescription {
			return Result{Message: fmt.Sprintf(
				"Description must be at least %d characters (current: %d)", rule.MinLength, n)}
		}
		return Result{Message: rule.Message}
	}
	if rule.MaxLength > 0 && n > rule.MaxLength {
		if name == FieldCraftDescription {
			return Result{Message: fmt.Sprintf(
				"Description must not exceed %d characters (current: %d)", rule.MaxLength, n)}
		}
		return Result{Message: rule.Message}
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return Result{Message: rule.Message}
	}
	if len(rule.OneOf) > 0 && !contains(rule.OneOf, value) {
		return Result{Message: rule.Message}
	}
	if name == FieldCraftDescription && isLowEffort(value) {
		return Result{Message: "Please provide a meaningful description of your craft idea"}
	}
	return Result{Valid: true}
}

// ValidateForm validates every required field of a registration. A required
// field whose trimmed value is empty fails with "This field is required"
// before any other rule is considered. The returned map carries one message
// per failing field and is empty when the form is valid.
func ValidateForm(fields map[string]string) (bool, map[string]string) {
	problems := make(map[string]string)
	for _, name := range RequiredFields {
		value := fields[name]
		if strings.TrimSpace(value) == "" {
			problems[name] = "This field is required"
			continue
		}
		if res := ValidateField(name, value); !res.Valid {
			problems[name] = res.Message
		}
	}
	return len(problems) == 0, problems
}

// isLowEffort reports whether a description looks like filler rather than a
// genuine craft idea: long identical-character runs or a blocklisted token.
func isLowEffort(text string) bool {
	if hasRepeatedRun(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, token := range blocklist {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

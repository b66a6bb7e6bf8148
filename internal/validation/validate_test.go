package validation

import (
	"strings"
	"testing"
)

// validFields returns a complete, passing form.
func validFields() map[string]string {
	return map[string]string{
		FieldFullName:         "Jane Doe",
		FieldRollNumber:       "CSE2024001",
		FieldEmail:            "a@b.com",
		FieldPhone:            "9876543210",
		FieldDepartment:       "CSE",
		FieldYearOfStudy:      "2nd Year",
		FieldSelectedMaterial: "Plastic Bottles",
		FieldCraftDescription: "A vertical planter built from cut plastic bottles with a drip line.",
	}
}

func TestValidateField_Deterministic(t *testing.T) {
	for name, value := range validFields() {
		first := ValidateField(name, value)
		for i := 0; i < 3; i++ {
			if got := ValidateField(name, value); got != first {
				t.Fatalf("ValidateField(%q) not deterministic: %+v vs %+v", name, first, got)
			}
		}
	}
}

func TestValidateField_FullName(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"Jane Doe", true},
		{"Jo", true},
		{"J", false},                       // below min length
		{strings.Repeat("a", 51), false},   // above max length
		{"Jane99", false},                  // digits rejected
		{"Jane-Doe", false},                // punctuation rejected
		{strings.Repeat("ab", 25), true},   // exactly 50
	}
	for _, tc := range cases {
		got := ValidateField(FieldFullName, tc.value)
		if got.Valid != tc.valid {
			t.Fatalf("full_name %q: expected valid=%v, got %+v", tc.value, tc.valid, got)
		}
		if !got.Valid && got.Message == "" {
			t.Fatalf("full_name %q: invalid result must carry a message", tc.value)
		}
	}
}

func TestValidateField_RollNumber(t *testing.T) {
	if res := ValidateField(FieldRollNumber, "CSE2024001"); !res.Valid {
		t.Fatalf("expected valid roll number, got %+v", res)
	}
	for _, v := range []string{"abcd", "with space1", "roll-42", strings.Repeat("9", 21)} {
		if res := ValidateField(FieldRollNumber, v); res.Valid {
			t.Fatalf("expected roll number %q to fail", v)
		}
	}
}

func TestValidateField_Email(t *testing.T) {
	for _, v := range []string{"a@b.com", "first.last+tag@sub.example.org"} {
		if res := ValidateField(FieldEmail, v); !res.Valid {
			t.Fatalf("expected email %q valid, got %+v", v, res)
		}
	}
	for _, v := range []string{"plain", "a@b", "a b@c.com", "@c.com"} {
		if res := ValidateField(FieldEmail, v); res.Valid {
			t.Fatalf("expected email %q invalid", v)
		}
	}
}

func TestValidateField_PhoneBoundary(t *testing.T) {
	if res := ValidateField(FieldPhone, "1234567890"); !res.Valid {
		t.Fatalf("10-digit phone should pass, got %+v", res)
	}
	if res := ValidateField(FieldPhone, "123456789"); res.Valid {
		t.Fatalf("9-digit phone should fail")
	}
	if res := ValidateField(FieldPhone, "12345678901"); res.Valid {
		t.Fatalf("11-digit phone should fail")
	}
	if res := ValidateField(FieldPhone, "12345abcde"); res.Valid {
		t.Fatalf("non-digit phone should fail")
	}
}

func TestValidateField_EnumeratedSets(t *testing.T) {
	if res := ValidateField(FieldDepartment, "CSE"); !res.Valid {
		t.Fatalf("CSE should be a valid department: %+v", res)
	}
	if res := ValidateField(FieldDepartment, "Astrology"); res.Valid {
		t.Fatalf("unlisted department should fail")
	}
	if res := ValidateField(FieldYearOfStudy, "4th Year"); !res.Valid {
		t.Fatalf("4th Year should be valid: %+v", res)
	}
	if res := ValidateField(FieldYearOfStudy, "5th Year"); res.Valid {
		t.Fatalf("5th Year should fail")
	}
	if res := ValidateField(FieldSelectedMaterial, "Glass Jars"); !res.Valid {
		t.Fatalf("Glass Jars should be valid: %+v", res)
	}
	if res := ValidateField(FieldSelectedMaterial, "Cardboard"); res.Valid {
		t.Fatalf("Cardboard should fail")
	}
}

func TestValidateField_CraftDescriptionBoundaries(t *testing.T) {
	// Avoid the repeated-run heuristic by alternating characters.
	mk := func(n int) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			if i%2 == 0 {
				b.WriteByte('x')
			} else {
				b.WriteByte('y')
			}
		}
		return b.String()
	}

	if res := ValidateField(FieldCraftDescription, mk(50)); !res.Valid {
		t.Fatalf("length 50 should pass, got %+v", res)
	}
	if res := ValidateField(FieldCraftDescription, mk(500)); !res.Valid {
		t.Fatalf("length 500 should pass, got %+v", res)
	}
	if res := ValidateField(FieldCraftDescription, mk(49)); res.Valid {
		t.Fatalf("length 49 should fail")
	}
	if res := ValidateField(FieldCraftDescription, mk(501)); res.Valid {
		t.Fatalf("length 501 should fail")
	}
}

func TestValidateField_CraftDescriptionLowEffort(t *testing.T) {
	// Length-valid but 55 identical characters: rejected by the heuristic.
	if res := ValidateField(FieldCraftDescription, strings.Repeat("a", 55)); res.Valid {
		t.Fatalf("repeated-character description should be rejected")
	}

	// Blocklisted tokens, case-insensitive.
	base := "I will build a planter from bottles and rope with paint "
	for _, token := range []string{"QWERTY", "asdf", "12345"} {
		if res := ValidateField(FieldCraftDescription, base+token); res.Valid {
			t.Fatalf("description containing %q should be rejected", token)
		}
	}

	// A meaningful description of similar length passes.
	if res := ValidateField(FieldCraftDescription, base+"and twine"); !res.Valid {
		t.Fatalf("meaningful description should pass, got %+v", res)
	}
}

func TestValidateForm_AllValid(t *testing.T) {
	ok, problems := ValidateForm(validFields())
	if !ok {
		t.Fatalf("expected valid form, problems: %v", problems)
	}
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestValidateForm_RequiredShortCircuits(t *testing.T) {
	fields := validFields()
	fields[FieldEmail] = "   " // whitespace-only counts as empty

	ok, problems := ValidateForm(fields)
	if ok {
		t.Fatalf("expected invalid form")
	}
	if got := problems[FieldEmail]; got != "This field is required" {
		t.Fatalf("required check must win over format rules, got %q", got)
	}
}

func TestValidateForm_CollectsPerFieldMessages(t *testing.T) {
	fields := validFields()
	fields[FieldPhone] = "12"
	fields[FieldDepartment] = "Alchemy"

	ok, problems := ValidateForm(fields)
	if ok {
		t.Fatalf("expected invalid form")
	}
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", problems)
	}
	if problems[FieldPhone] == "" || problems[FieldDepartment] == "" {
		t.Fatalf("expected messages for phone and department, got %v", problems)
	}
}

func TestHasRepeatedRun_Boundaries(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", false},
		{"zzzz", false},                     // run of 4 is the longest allowed
		{"zzzzz", true},                     // run of 5 trips the detector
		{"xyxyxyxyxy", false},               // alternating, no run
		{"planter with zzzzz inside", true}, // run in the middle
		{"ooooOoooo", false},                // case matters, two runs of 4
		// non-ASCII runes count too
		{"ооооо", true},
	}
	for _, tc := range cases {
		if got := hasRepeatedRun(tc.text); got != tc.want {
			t.Errorf("hasRepeatedRun(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestValidateField_RepeatedRunWithoutBlocklist(t *testing.T) {
	// Length-valid, no blocklisted token, but a long identical run: the
	// consecutive-character heuristic alone must reject it.
	desc := "A hanging planter woven from rope with zzzzzzz knots along the rim for drainage."
	if res := ValidateField(FieldCraftDescription, desc); res.Valid {
		t.Fatalf("run of identical characters should be rejected")
	}
	clean := "A hanging planter woven from rope with seven knots along the rim for drainage."
	if res := ValidateField(FieldCraftDescription, clean); !res.Valid {
		t.Fatalf("clean description should pass, got %+v", res)
	}
}

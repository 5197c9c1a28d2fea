package forms

import (
	"net/url"
	"testing"
)

func TestPackRepeatingDropsEmptyRows(t *testing.T) {
	values := url.Values{
		"ed_school[]":      {"MIT", "", "Stanford"},
		"ed_degree_type[]": {"BSc", "", ""},
		"ed_city[]":        {"Cambridge"},
	}

	entries := parseEducation(values)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].School != "MIT" || entries[0].City != "Cambridge" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	// Short columns pad with empty strings.
	if entries[1].School != "Stanford" || entries[1].City != "" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseExperienceTrimsFields(t *testing.T) {
	values := url.Values{
		"e_company[]": {"  Initech  "},
		"e_title[]":   {" Engineer "},
		"e_end[]":     {"Present"},
	}

	entries := parseExperience(values)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Company != "Initech" || entries[0].Title != "Engineer" {
		t.Fatalf("expected trimmed fields, got %+v", entries[0])
	}
	if entries[0].End != "Present" {
		t.Fatalf("expected end preserved, got %q", entries[0].End)
	}
}

func TestValidatePersonal(t *testing.T) {
	errs := validatePersonal(PersonalInfo{LastName: "Lovelace", Email: "bad"})
	if _, ok := errs["first_name"]; !ok {
		t.Fatalf("expected first_name error, got %v", errs)
	}
	if _, ok := errs["email"]; !ok {
		t.Fatalf("expected email error, got %v", errs)
	}
	if _, ok := errs["last_name"]; ok {
		t.Fatalf("unexpected last_name error: %v", errs)
	}

	errs = validatePersonal(PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	if errs.Any() {
		t.Fatalf("expected valid personal info, got %v", errs)
	}
}

func TestValidateEducationRowFields(t *testing.T) {
	errs := validateEducation([]EducationEntry{
		{School: "MIT"},
		{DegreeType: "BSc"},
	})
	if _, ok := errs["ed_school[1]"]; !ok {
		t.Fatalf("expected school error on second row, got %v", errs)
	}
}

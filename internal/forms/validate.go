package forms

import (
	"regexp"
	"strconv"
	"strings"
)

// ValidationErrors maps field names to human-readable messages. A non-empty
// map means the step must not advance and state must not be mutated.
type ValidationErrors map[string]string

// Any reports whether at least one field failed validation.
func (v ValidationErrors) Any() bool {
	return len(v) > 0
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validatePersonal(p PersonalInfo) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(p.FirstName) == "" {
		errs["first_name"] = "first name is required"
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs["last_name"] = "last name is required"
	}
	email := strings.TrimSpace(p.Email)
	switch {
	case email == "":
		errs["email"] = "email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "email is not valid"
	}
	return errs
}

func validateEducation(entries []EducationEntry) ValidationErrors {
	errs := ValidationErrors{}
	for i, e := range entries {
		if strings.TrimSpace(e.School) == "" {
			errs[rowField("ed_school", i)] = "school is required"
		}
	}
	return errs
}

func validateExperience(entries []ExperienceEntry) ValidationErrors {
	errs := ValidationErrors{}
	for i, e := range entries {
		if strings.TrimSpace(e.Company) == "" {
			errs[rowField("e_company", i)] = "employer is required"
		}
		if strings.TrimSpace(e.Title) == "" {
			errs[rowField("e_title", i)] = "position title is required"
		}
	}
	return errs
}

func rowField(name string, idx int) string {
	return name + "[" + strconv.Itoa(idx) + "]"
}

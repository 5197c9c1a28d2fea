package forms

import (
	"net/url"
	"strings"
)

// packRepeating collects parallel <prefix>_<field>[] arrays into row maps,
// padding short columns and dropping rows that are entirely empty.
func packRepeating(values url.Values, prefix string, fields []string) []map[string]string {
	columns := make(map[string][]string, len(fields))
	length := 0
	for _, f := range fields {
		col := values[prefix+"_"+f+"[]"]
		columns[f] = col
		if len(col) > length {
			length = len(col)
		}
	}

	var rows []map[string]string
	for i := 0; i < length; i++ {
		row := make(map[string]string, len(fields))
		empty := true
		for _, f := range fields {
			v := ""
			if i < len(columns[f]) {
				v = strings.TrimSpace(columns[f][i])
			}
			row[f] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

func parsePersonal(values url.Values) PersonalInfo {
	return PersonalInfo{
		FirstName: field(values, "first_name"),
		LastName:  field(values, "last_name"),
		Email:     field(values, "email"),
		Phone:     field(values, "phone"),
		Address:   field(values, "physical_address"),
		Summary:   field(values, "summary"),
	}
}

func parseEducation(values url.Values) []EducationEntry {
	rows := packRepeating(values, "ed", []string{
		"school", "city", "state", "country", "degree_type", "field",
		"start", "end", "gpa", "honors", "courses",
	})
	entries := make([]EducationEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, EducationEntry{
			School:     r["school"],
			City:       r["city"],
			State:      r["state"],
			Country:    r["country"],
			DegreeType: r["degree_type"],
			Field:      r["field"],
			Start:      r["start"],
			End:        r["end"],
			GPA:        r["gpa"],
			Honors:     r["honors"],
			Courses:    r["courses"],
		})
	}
	return entries
}

func parseExperience(values url.Values) []ExperienceEntry {
	rows := packRepeating(values, "e", []string{
		"company", "city", "state", "country", "title", "group",
		"start", "end", "summary",
	})
	entries := make([]ExperienceEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, ExperienceEntry{
			Company: r["company"],
			City:    r["city"],
			State:   r["state"],
			Country: r["country"],
			Title:   r["title"],
			Group:   r["group"],
			Start:   r["start"],
			End:     r["end"],
			Summary: r["summary"],
		})
	}
	return entries
}

func parseSkills(values url.Values) Skills {
	return Skills{
		Items:                   dedupeSkills(values["skills[]"]),
		LanguagesFluent:         field(values, "languages"),
		LanguagesConversational: field(values, "languages_secondary"),
		Certifications:          field(values, "certifications"),
		Activities:              field(values, "activities"),
		Interests:               field(values, "interests"),
	}
}

// dedupeSkills drops blanks and case-insensitive duplicates while keeping
// first-seen order.
func dedupeSkills(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func parseCoverLetter(values url.Values) CoverLetter {
	return CoverLetter{
		RecruiterName:       field(values, "recruiter_name"),
		RecruiterTitle:      field(values, "recruiter_title"),
		RecruiterSalutation: field(values, "recruiter_salutation"),
		RecruiterAddress:    field(values, "recruiter_address"),
		CompanyName:         field(values, "company_name"),
		Year:                field(values, "cl_year"),
		ReferralSource:      field(values, "referral_source"),
		FirmImpression:      field(values, "firm_impression"),
		PositionName:        field(values, "position_name"),
		PastExperience:      field(values, "past_experience"),
		ExperienceTheme:     field(values, "experience_theme"),
		GainedSkills:        field(values, "gained_skills"),
		OtherSkills:         field(values, "other_skills"),
		Project:             field(values, "project"),
		ProjectResult:       field(values, "project_result"),
		BackgroundSummary:   field(values, "background_summary"),
		SkillSummary:        field(values, "skill_summary"),
		FirmTrackRecord:     field(values, "firm_track_record"),
		Signature:           field(values, "signature"),
	}
}

func field(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

package compose

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cvwizard-backend/internal/forms"
)

// Assembler builds document models from a completed form state. Now supplies
// the date printed on the cover letter; it defaults to time.Now so tests can
// pin it.
type Assembler struct {
	Now func() time.Time
}

func (a Assembler) clock() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// BuildCV projects the form state into the CV document model. Section order
// is fixed: Personal, Experience, Education, Skills; sections are present
// even when empty.
func (a Assembler) BuildCV(state forms.FormState) (DocumentModel, error) {
	if err := requirePersonal(state.Personal); err != nil {
		return DocumentModel{}, err
	}

	model := DocumentModel{
		Title: state.Personal.FullName(),
		Sections: []Section{
			a.personalSection(state.Personal),
			a.experienceSection(state.Experience),
			a.educationSection(state.Education),
			a.skillsSection(state.Skills),
		},
	}
	return model, nil
}

func requirePersonal(p forms.PersonalInfo) error {
	var missing []string
	if p.FullName() == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteData, strings.Join(missing, ", "))
	}
	return nil
}

func (a Assembler) personalSection(p forms.PersonalInfo) Section {
	blocks := []Block{Paragraph(p.FullName())}
	if contact := joinNonEmpty(" | ", p.Email, p.Phone, p.Address); contact != "" {
		blocks = append(blocks, Paragraph(contact))
	}
	if strings.TrimSpace(p.Summary) != "" {
		blocks = append(blocks, Paragraph(strings.TrimSpace(p.Summary)))
	}
	return Section{Title: "Personal", Blocks: blocks}
}

func (a Assembler) experienceSection(entries []forms.ExperienceEntry) Section {
	section := Section{Title: "Experience"}
	for _, e := range sortExperience(entries) {
		section.Blocks = append(section.Blocks, KeyValue(e.Company, cityLocation(e.City, e.State, e.Country)))

		role := e.Title
		if e.Group != "" {
			role = e.Title + ", " + e.Group
		}
		if span := dateSpan(e.Start, e.End); span != "" {
			role = joinNonEmpty(" — ", role, span)
		}
		if role != "" {
			section.Blocks = append(section.Blocks, Paragraph(role))
		}

		if bullets := splitLines(e.Summary); len(bullets) > 0 {
			section.Blocks = append(section.Blocks, Bullets(bullets))
		}
	}
	return section
}

func (a Assembler) educationSection(entries []forms.EducationEntry) Section {
	section := Section{Title: "Education"}
	for _, e := range entries {
		section.Blocks = append(section.Blocks, KeyValue(e.School, cityLocation(e.City, e.State, e.Country)))

		degree := joinNonEmpty(" in ", e.DegreeType, e.Field)
		if span := dateSpan(e.Start, e.End); span != "" {
			degree = joinNonEmpty(" — ", degree, span)
		}
		if degree != "" {
			section.Blocks = append(section.Blocks, Paragraph(degree))
		}

		for _, kv := range []struct{ key, value string }{
			{"GPA", e.GPA},
			{"Honors", e.Honors},
			{"Relevant Coursework", e.Courses},
		} {
			if strings.TrimSpace(kv.value) != "" {
				section.Blocks = append(section.Blocks, KeyValue(kv.key, strings.TrimSpace(kv.value)))
			}
		}
	}
	return section
}

func (a Assembler) skillsSection(s forms.Skills) Section {
	section := Section{Title: "Skills"}
	if len(s.Items) > 0 {
		section.Blocks = append(section.Blocks, Bullets(s.Items))
	}
	for _, kv := range []struct{ key, value string }{
		{"Languages (fluent)", s.LanguagesFluent},
		{"Languages (conversational)", s.LanguagesConversational},
		{"Certifications", s.Certifications},
		{"Activities", s.Activities},
		{"Interests", s.Interests},
	} {
		if strings.TrimSpace(kv.value) != "" {
			section.Blocks = append(section.Blocks, KeyValue(kv.key, strings.TrimSpace(kv.value)))
		}
	}
	return section
}

var monthDatePattern = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// sortExperience orders entries most-recent-first when every end date is
// comparable (YYYY-MM or "Present"); otherwise insertion order is kept.
func sortExperience(entries []forms.ExperienceEntry) []forms.ExperienceEntry {
	ranks := make([]int, len(entries))
	for i, e := range entries {
		rank, ok := dateRank(e.End)
		if !ok {
			return entries
		}
		ranks[i] = rank
	}

	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return ranks[idx[i]] > ranks[idx[j]]
	})

	out := make([]forms.ExperienceEntry, len(entries))
	for i, j := range idx {
		out[i] = entries[j]
	}
	return out
}

// dateRank maps an end date onto a sortable scale. "Present" outranks any
// month.
func dateRank(end string) (int, bool) {
	end = strings.TrimSpace(end)
	if strings.EqualFold(end, "present") {
		return 1 << 30, true
	}
	m := monthDatePattern.FindStringSubmatch(end)
	if m == nil {
		return 0, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return year*12 + month, true
}

func dateSpan(start, end string) string {
	return joinNonEmpty(" – ", strings.TrimSpace(start), strings.TrimSpace(end))
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}

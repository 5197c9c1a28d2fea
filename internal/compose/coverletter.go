package compose

import (
	"fmt"
	"strings"

	"cvwizard-backend/internal/forms"
)

// coverLetterDateFormat mirrors the "02 Jan 2006" date printed by the
// original letter template.
const coverLetterDateFormat = "02 Jan 2006"

// BuildCoverLetter projects the form state into the cover letter model: a
// single flowing-text section. The first education entry supplies the school
// and major mentioned in the opening paragraph.
func (a Assembler) BuildCoverLetter(state forms.FormState) (DocumentModel, error) {
	if err := requirePersonal(state.Personal); err != nil {
		return DocumentModel{}, err
	}

	p := state.Personal
	cl := state.CoverLetter

	var school, major string
	if len(state.Education) > 0 {
		school = state.Education[0].School
		major = state.Education[0].Field
	}

	section := Section{Title: "Cover Letter"}
	add := func(text string) {
		if strings.TrimSpace(text) != "" {
			section.Blocks = append(section.Blocks, Paragraph(strings.TrimSpace(text)))
		}
	}

	add(p.FullName())
	add(p.Address)
	add(joinNonEmpty(" | ", p.Phone, p.Email))
	add(a.clock().Format(coverLetterDateFormat))

	add(joinNonEmpty("\n", cl.RecruiterName, cl.RecruiterTitle, cl.CompanyName, cl.RecruiterAddress))

	salutation := cl.RecruiterSalutation
	if salutation == "" {
		salutation = "Mr."
	}
	if last := cl.RecruiterLastName(); last != "" {
		add(fmt.Sprintf("Dear %s %s,", salutation, last))
	} else {
		add("Dear Hiring Manager,")
	}

	add(openingParagraph(cl, school, major))
	add(experienceParagraph(cl))
	add(closingParagraph(cl, p))

	signature := cl.Signature
	if signature == "" {
		signature = p.FullName()
	}
	add("Sincerely,")
	add(signature)

	return DocumentModel{
		Title:    "Cover Letter",
		Sections: []Section{section},
	}, nil
}

func openingParagraph(cl forms.CoverLetter, school, major string) string {
	var sb strings.Builder
	sb.WriteString("I am a ")
	if cl.Year != "" {
		sb.WriteString(cl.Year + " ")
	}
	if major != "" {
		sb.WriteString(major + " ")
	}
	sb.WriteString("student")
	if school != "" {
		sb.WriteString(" at " + school)
	}
	if cl.PositionName != "" {
		sb.WriteString(", writing to apply for the " + cl.PositionName + " position")
	} else {
		sb.WriteString(", writing to express my interest in joining your team")
	}
	if cl.CompanyName != "" {
		sb.WriteString(" at " + cl.CompanyName)
	}
	sb.WriteString(".")
	if cl.ReferralSource != "" {
		sb.WriteString(" I learned about the opportunity through " + cl.ReferralSource + ".")
	}
	if cl.FirmImpression != "" {
		sb.WriteString(" " + sentence(cl.FirmImpression))
	}
	return sb.String()
}

func experienceParagraph(cl forms.CoverLetter) string {
	var sb strings.Builder
	if cl.PastExperience != "" {
		sb.WriteString("Previously, I have " + cl.PastExperience + ".")
	}
	if cl.ExperienceTheme != "" {
		sb.WriteString(" My work has centered on " + cl.ExperienceTheme + ".")
	}
	if cl.GainedSkills != "" {
		sb.WriteString(" Through it I developed " + cl.GainedSkills + ".")
	}
	if cl.OtherSkills != "" {
		sb.WriteString(" I also bring " + cl.OtherSkills + ".")
	}
	if cl.Project != "" {
		sb.WriteString(" Most recently I worked on " + cl.Project)
		if cl.ProjectResult != "" {
			sb.WriteString(", which " + cl.ProjectResult)
		}
		sb.WriteString(".")
	}
	return strings.TrimSpace(sb.String())
}

func closingParagraph(cl forms.CoverLetter, p forms.PersonalInfo) string {
	var sb strings.Builder
	if cl.BackgroundSummary != "" {
		sb.WriteString("With my background in " + cl.BackgroundSummary)
		if cl.SkillSummary != "" {
			sb.WriteString(" and my " + cl.SkillSummary)
		}
		sb.WriteString(", I am confident I can contribute")
		if cl.PositionName != "" {
			sb.WriteString(" as a " + cl.PositionName)
		}
		sb.WriteString(".")
	}
	if cl.FirmTrackRecord != "" {
		sb.WriteString(" " + sentence("Your record of "+cl.FirmTrackRecord+" makes this opportunity especially compelling"))
	}
	contact := joinNonEmpty(" or ", p.Phone, p.Email)
	if contact != "" {
		sb.WriteString(" I would welcome the chance to discuss my candidacy and can be reached at " + contact + ".")
	}
	return strings.TrimSpace(sb.String())
}

func sentence(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

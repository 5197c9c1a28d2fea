package forms

import (
	"strings"
	"time"
)

// PersonalInfo holds the applicant's contact details collected at step one.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Summary   string `json:"summary"`
}

// FullName joins first and last name, skipping empty parts.
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// EducationEntry is one row of the education step. Order is insertion order.
type EducationEntry struct {
	School     string `json:"school"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	DegreeType string `json:"degreeType"`
	Field      string `json:"field"`
	Start      string `json:"start"`
	End        string `json:"end"`
	GPA        string `json:"gpa"`
	Honors     string `json:"honors"`
	Courses    string `json:"courses"`
}

// ExperienceEntry is one row of the experience step. Order is insertion order.
type ExperienceEntry struct {
	Company string `json:"company"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Title   string `json:"title"`
	Group   string `json:"group"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Summary string `json:"summary"`
}

// Skills holds the de-duplicated skill list plus the free-text footer fields.
// Items keep first-seen order for display.
type Skills struct {
	Items                   []string `json:"items"`
	LanguagesFluent         string   `json:"languagesFluent"`
	LanguagesConversational string   `json:"languagesConversational"`
	Certifications          string   `json:"certifications"`
	Activities              string   `json:"activities"`
	Interests               string   `json:"interests"`
}

// CoverLetter holds the free-form cover letter inputs.
type CoverLetter struct {
	RecruiterName       string `json:"recruiterName"`
	RecruiterTitle      string `json:"recruiterTitle"`
	RecruiterSalutation string `json:"recruiterSalutation"`
	RecruiterAddress    string `json:"recruiterAddress"`
	CompanyName         string `json:"companyName"`
	Year                string `json:"year"`
	ReferralSource      string `json:"referralSource"`
	FirmImpression      string `json:"firmImpression"`
	PositionName        string `json:"positionName"`
	PastExperience      string `json:"pastExperience"`
	ExperienceTheme     string `json:"experienceTheme"`
	GainedSkills        string `json:"gainedSkills"`
	OtherSkills         string `json:"otherSkills"`
	Project             string `json:"project"`
	ProjectResult       string `json:"projectResult"`
	BackgroundSummary   string `json:"backgroundSummary"`
	SkillSummary        string `json:"skillSummary"`
	FirmTrackRecord     string `json:"firmTrackRecord"`
	Signature           string `json:"signature"`
}

// RecruiterLastName derives the last word of the recruiter's name for the
// salutation line.
func (c CoverLetter) RecruiterLastName() string {
	parts := strings.Fields(strings.TrimSpace(c.RecruiterName))
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// FormState is the per-session aggregate mutated by each wizard step.
type FormState struct {
	SessionID   string            `json:"sessionId"`
	Step        Step              `json:"step"`
	Personal    PersonalInfo      `json:"personal"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	Skills      Skills            `json:"skills"`
	CoverLetter CoverLetter       `json:"coverLetter"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NewFormState returns an empty state positioned at the first step.
func NewFormState(sessionID string, now time.Time) FormState {
	return FormState{
		SessionID: sessionID,
		Step:      StepPersonal,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

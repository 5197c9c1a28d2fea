package forms

// Step identifies one page of the wizard.
type Step string

const (
	StepPersonal    Step = "personal"
	StepEducation   Step = "education"
	StepExperience  Step = "experience"
	StepSkills      Step = "skills"
	StepCoverLetter Step = "cover_letter"
	StepReview      Step = "review"
)

// stepOrder is the linear forward path of the wizard.
var stepOrder = []Step{
	StepPersonal,
	StepEducation,
	StepExperience,
	StepSkills,
	StepCoverLetter,
	StepReview,
}

// ParseStep maps a URL segment to a Step.
func ParseStep(raw string) (Step, bool) {
	s := Step(raw)
	for _, known := range stepOrder {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Next returns the following step. Review is terminal and returns itself.
func (s Step) Next() Step {
	for i, step := range stepOrder {
		if step == s && i+1 < len(stepOrder) {
			return stepOrder[i+1]
		}
	}
	return StepReview
}

// Prev returns the preceding step. Personal is the first and returns itself.
func (s Step) Prev() Step {
	for i, step := range stepOrder {
		if step == s && i > 0 {
			return stepOrder[i-1]
		}
	}
	return StepPersonal
}

// index returns the position of s in the wizard order, or -1.
func (s Step) index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Reached reports whether the wizard at current has already reached s.
func Reached(current, s Step) bool {
	ci, si := current.index(), s.index()
	return ci >= 0 && si >= 0 && ci >= si
}

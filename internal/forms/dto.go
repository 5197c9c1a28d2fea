package forms

// StateResponse is the outward-facing view of a session's form state.
type StateResponse struct {
	Step        Step              `json:"step"`
	Personal    PersonalInfo      `json:"personal"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	Skills      Skills            `json:"skills"`
	CoverLetter CoverLetter       `json:"coverLetter"`
}

// StepResult reports where the wizard moved after a successful submission.
type StepResult struct {
	NextStep Step `json:"nextStep"`
}

func toStateResponse(state FormState) StateResponse {
	return StateResponse{
		Step:        state.Step,
		Personal:    state.Personal,
		Education:   state.Education,
		Experience:  state.Experience,
		Skills:      state.Skills,
		CoverLetter: state.CoverLetter,
	}
}

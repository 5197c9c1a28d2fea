package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Service implements the step controller: it validates step input, merges it
// into the session's form state, and moves the wizard pointer.
type Service struct {
	Repo Repo
	TTL  time.Duration
	Now  func() time.Time
}

func (s *Service) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// State returns the session's form state, creating an empty one on first
// visit and replacing an expired one.
func (s *Service) State(ctx context.Context, sessionID string) (FormState, error) {
	if sessionID == "" {
		return FormState{}, errors.New("session id required")
	}

	state, err := s.Repo.Get(ctx, sessionID)
	if errors.Is(err, ErrNotFound) || (err == nil && s.expired(state)) {
		state = NewFormState(sessionID, s.clock())
		if err := s.Repo.Save(ctx, state); err != nil {
			return FormState{}, err
		}
		return state, nil
	}
	if err != nil {
		return FormState{}, err
	}
	return state, nil
}

// Current returns the session's form state without creating one.
func (s *Service) Current(ctx context.Context, sessionID string) (FormState, error) {
	state, err := s.Repo.Get(ctx, sessionID)
	if err != nil {
		return FormState{}, err
	}
	if s.expired(state) {
		return FormState{}, ErrNotFound
	}
	return state, nil
}

// SubmitStep validates the raw form input for one wizard step. On success the
// validated fields are merged into the state and the next step is returned.
// On validation failure the state is left untouched and the field-level
// errors are returned instead.
func (s *Service) SubmitStep(ctx context.Context, sessionID string, step Step, values url.Values) (Step, ValidationErrors, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	if values.Get("nav") == "back" {
		prev := step.Prev()
		return prev, nil, nil
	}

	if !Reached(state.Step, step) {
		return "", nil, fmt.Errorf("%w: %s not reached yet", ErrStepNotReached, step)
	}

	var errs ValidationErrors
	merge := func(FormState) FormState { return state }

	switch step {
	case StepPersonal:
		personal := parsePersonal(values)
		errs = validatePersonal(personal)
		merge = func(st FormState) FormState {
			st.Personal = personal
			return st
		}
	case StepEducation:
		education := parseEducation(values)
		errs = validateEducation(education)
		merge = func(st FormState) FormState {
			st.Education = education
			return st
		}
	case StepExperience:
		experience := parseExperience(values)
		errs = validateExperience(experience)
		merge = func(st FormState) FormState {
			st.Experience = experience
			return st
		}
	case StepSkills:
		skills := parseSkills(values)
		merge = func(st FormState) FormState {
			st.Skills = skills
			return st
		}
	case StepCoverLetter:
		letter := parseCoverLetter(values)
		merge = func(st FormState) FormState {
			st.CoverLetter = letter
			return st
		}
	case StepReview:
		// Review collects nothing; submitting it re-confirms the state.
	default:
		return "", nil, ErrInvalidStep
	}

	if errs.Any() {
		return "", errs, nil
	}

	next := step.Next()
	state = merge(state)
	// Editing an earlier step from review must not forfeit review access,
	// so the pointer only ever moves forward.
	if !Reached(state.Step, next) {
		state.Step = next
	}
	state.UpdatedAt = s.clock()
	if err := s.Repo.Save(ctx, state); err != nil {
		return "", nil, err
	}
	return next, nil, nil
}

// Reset destroys the session's form state.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	return s.Repo.Delete(ctx, sessionID)
}

// Sweep removes expired states and reports how many were dropped.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	if s.TTL <= 0 {
		return 0, nil
	}
	return s.Repo.DeleteExpired(ctx, s.clock().Add(-s.TTL))
}

func (s *Service) expired(state FormState) bool {
	if s.TTL <= 0 {
		return false
	}
	return state.UpdatedAt.Add(s.TTL).Before(s.clock())
}

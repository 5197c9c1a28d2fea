package compose

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"cvwizard-backend/internal/forms"
)

func completeState() forms.FormState {
	return forms.FormState{
		SessionID: "test-session",
		Step:      forms.StepReview,
		Personal: forms.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "555-0100",
			Address:   "12 Analytical Way, London",
			Summary:   "Mathematician and programmer.",
		},
		Education: []forms.EducationEntry{
			{
				School:     "University of London",
				City:       "London",
				Country:    "United Kingdom",
				DegreeType: "BSc",
				Field:      "Mathematics",
				Start:      "2022-09",
				End:        "2026-06",
				GPA:        "3.9",
			},
		},
		Experience: []forms.ExperienceEntry{
			{
				Company: "Analytical Engines Ltd",
				City:    "London",
				Country: "United Kingdom",
				Title:   "Programmer",
				Start:   "2024-06",
				End:     "2024-09",
				Summary: "Wrote the first published algorithm.\nDocumented the engine.",
			},
			{
				Company: "Babbage & Co",
				City:    "Cambridge",
				State:   "MA",
				Country: "USA",
				Title:   "Research Intern",
				Start:   "2025-06",
				End:     "Present",
			},
		},
		Skills: forms.Skills{
			Items:           []string{"Mathematics", "Algorithms"},
			LanguagesFluent: "English, French",
		},
		CoverLetter: forms.CoverLetter{
			RecruiterName: "Charles Babbage",
			CompanyName:   "Babbage & Co",
			PositionName:  "Analyst",
			Year:          "final-year",
			Signature:     "Ada",
		},
	}
}

func TestBuildCVSectionOrderIsFixed(t *testing.T) {
	var asm Assembler

	model, err := asm.BuildCV(completeState())
	if err != nil {
		t.Fatalf("BuildCV: %v", err)
	}

	want := []string{"Personal", "Experience", "Education", "Skills"}
	if got := model.SectionTitles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sections %v, got %v", want, got)
	}
	if model.Title != "Ada Lovelace" {
		t.Fatalf("expected title Ada Lovelace, got %q", model.Title)
	}
}

func TestBuildCVEmptySectionsStillPresent(t *testing.T) {
	var asm Assembler
	state := completeState()
	state.Education = nil
	state.Experience = nil
	state.Skills = forms.Skills{}

	model, err := asm.BuildCV(state)
	if err != nil {
		t.Fatalf("BuildCV: %v", err)
	}
	want := []string{"Personal", "Experience", "Education", "Skills"}
	if got := model.SectionTitles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sections %v, got %v", want, got)
	}
	if blocks := model.Sections[1].Blocks; len(blocks) != 0 {
		t.Fatalf("expected empty experience section, got %d blocks", len(blocks))
	}
}

func TestBuildCVRequiresNameAndEmail(t *testing.T) {
	var asm Assembler

	state := completeState()
	state.Personal.FirstName = ""
	state.Personal.LastName = ""
	if _, err := asm.BuildCV(state); !errors.Is(err, ErrIncompleteData) {
		t.Fatalf("expected ErrIncompleteData for missing name, got %v", err)
	}

	state = completeState()
	state.Personal.Email = " "
	if _, err := asm.BuildCV(state); !errors.Is(err, ErrIncompleteData) {
		t.Fatalf("expected ErrIncompleteData for missing email, got %v", err)
	}
}

func TestBuildCVSortsExperienceMostRecentFirst(t *testing.T) {
	var asm Assembler

	model, err := asm.BuildCV(completeState())
	if err != nil {
		t.Fatalf("BuildCV: %v", err)
	}

	exp := model.Sections[1]
	if len(exp.Blocks) == 0 {
		t.Fatalf("expected experience blocks")
	}
	// "Present" outranks any finished role.
	if exp.Blocks[0].Key != "Babbage & Co" {
		t.Fatalf("expected current role first, got %q", exp.Blocks[0].Key)
	}
	// US location collapses the country.
	if exp.Blocks[0].Value != "Cambridge, MA" {
		t.Fatalf("expected US country collapsed, got %q", exp.Blocks[0].Value)
	}
}

func TestBuildCVKeepsOrderWhenDatesNotComparable(t *testing.T) {
	var asm Assembler
	state := completeState()
	state.Experience[0].End = "Summer 2024"

	model, err := asm.BuildCV(state)
	if err != nil {
		t.Fatalf("BuildCV: %v", err)
	}
	exp := model.Sections[1]
	if exp.Blocks[0].Key != "Analytical Engines Ltd" {
		t.Fatalf("expected insertion order kept, got %q first", exp.Blocks[0].Key)
	}
}

func TestBuildCVDeterministic(t *testing.T) {
	asm := Assembler{Now: func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}}
	state := completeState()

	first, err := asm.BuildCV(state)
	if err != nil {
		t.Fatalf("BuildCV: %v", err)
	}
	second, err := asm.BuildCV(state)
	if err != nil {
		t.Fatalf("BuildCV: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical models for identical state")
	}
}

func TestBuildCVSummaryBecomesBullets(t *testing.T) {
	var asm Assembler

	model, err := asm.BuildCV(completeState())
	if err != nil {
		t.Fatalf("BuildCV: %v", err)
	}

	var bullets []string
	for _, block := range model.Sections[1].Blocks {
		if block.Kind == BlockBullets {
			bullets = block.Items
		}
	}
	want := []string{"Wrote the first published algorithm.", "Documented the engine."}
	if !reflect.DeepEqual(bullets, want) {
		t.Fatalf("expected bullets %v, got %v", want, bullets)
	}
}

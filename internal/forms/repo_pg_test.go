package forms

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	state := NewFormState("11111111-2222-3333-4444-555555555555", now)
	state.Step = StepEducation
	state.Personal = PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	mock.ExpectExec("INSERT INTO form_states").
		WithArgs(
			state.SessionID,
			sqlmock.AnyArg(), // payload
			string(StepEducation),
			state.CreatedAt,
			state.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetDecodesPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC().Truncate(time.Second)
	stored := NewFormState("11111111-2222-3333-4444-555555555555", now)
	stored.Step = StepSkills
	stored.Skills = Skills{Items: []string{"Go", "SQL"}}
	payload, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	rows := sqlmock.NewRows([]string{"payload", "created_at", "updated_at"}).
		AddRow(payload, now, now)
	mock.ExpectQuery("SELECT payload, created_at, updated_at").
		WithArgs(stored.SessionID).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), stored.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Step != StepSkills {
		t.Fatalf("expected step skills, got %s", got.Step)
	}
	if len(got.Skills.Items) != 2 || got.Skills.Items[0] != "Go" {
		t.Fatalf("expected skills decoded, got %+v", got.Skills)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at from column, got %v", got.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteExpiredRowsAffectedError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	cutoff := time.Now().UTC()
	rowsErr := errors.New("rows affected unsupported")
	mock.ExpectExec("DELETE FROM form_states WHERE updated_at").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewErrorResult(rowsErr))

	if _, err := repo.DeleteExpired(context.Background(), cutoff); !errors.Is(err, rowsErr) {
		t.Fatalf("expected rows affected error, got %v", err)
	}
}

func TestPGRepoGetMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT payload, created_at, updated_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "created_at", "updated_at"}))

	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteExpiredReportsCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	cutoff := time.Now().UTC()
	mock.ExpectExec("DELETE FROM form_states WHERE updated_at").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteExpired(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

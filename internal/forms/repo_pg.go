package forms

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. The aggregate is stored as a JSONB
// payload; current_step and updated_at are lifted into columns for queries.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the state for a session.
func (r *PGRepo) Get(ctx context.Context, sessionID string) (FormState, error) {
	const query = `
SELECT payload, created_at, updated_at
FROM form_states
WHERE session_id = $1`

	var (
		payload   []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(&payload, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return FormState{}, ErrNotFound
	}
	if err != nil {
		return FormState{}, fmt.Errorf("get form state: %w", err)
	}

	var state FormState
	if err := json.Unmarshal(payload, &state); err != nil {
		return FormState{}, fmt.Errorf("decode form state: %w", err)
	}
	state.SessionID = sessionID
	state.CreatedAt = createdAt
	state.UpdatedAt = updatedAt
	return state, nil
}

// Save upserts the state for its session.
func (r *PGRepo) Save(ctx context.Context, state FormState) error {
	const query = `
INSERT INTO form_states (session_id, payload, current_step, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (session_id) DO UPDATE SET
    payload = EXCLUDED.payload,
    current_step = EXCLUDED.current_step,
    updated_at = EXCLUDED.updated_at`

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode form state: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		state.SessionID,
		payload,
		string(state.Step),
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save form state: %w", err)
	}
	return nil
}

// Delete removes the state for a session. Missing state is not an error.
func (r *PGRepo) Delete(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM form_states WHERE session_id = $1`
	if _, err := r.DB.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("delete form state: %w", err)
	}
	return nil
}

// DeleteExpired drops states not touched since before and reports the count.
func (r *PGRepo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	const query = `DELETE FROM form_states WHERE updated_at < $1`
	res, err := r.DB.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired form states: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired form states: %w", err)
	}
	return int(affected), nil
}

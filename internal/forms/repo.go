package forms

import (
	"context"
	"time"
)

// Repo defines persistence operations for per-session form state.
type Repo interface {
	Get(ctx context.Context, sessionID string) (FormState, error)
	Save(ctx context.Context, state FormState) error
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

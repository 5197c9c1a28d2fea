package forms

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]FormState
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]FormState),
	}
}

// Get returns the state for a session.
func (r *MemoryRepo) Get(ctx context.Context, sessionID string) (FormState, error) {
	if err := ctx.Err(); err != nil {
		return FormState{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.data[sessionID]
	if !ok {
		return FormState{}, ErrNotFound
	}
	return state, nil
}

// Save stores/overwrites the state for its session.
func (r *MemoryRepo) Save(ctx context.Context, state FormState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[state.SessionID] = state
	return nil
}

// Delete removes the state for a session. Missing state is not an error.
func (r *MemoryRepo) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, sessionID)
	return nil
}

// DeleteExpired drops states not touched since before and reports the count.
func (r *MemoryRepo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, state := range r.data {
		if state.UpdatedAt.Before(before) {
			delete(r.data, id)
			removed++
		}
	}
	return removed, nil
}

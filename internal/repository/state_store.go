package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/college-events-api/internal/models"
)

// StateStore holds the live application state. Readers get a private copy and
// writers swap in the value returned by a transition.
type StateStore struct {
	mu    sync.RWMutex
	state models.AppState
}

// NewStateStore wraps the initial state.
func NewStateStore(initial models.AppState) *StateStore {
	return &StateStore{state: initial.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *StateStore) Snapshot(ctx context.Context) (models.AppState, error) {
	if err := ctx.Err(); err != nil {
		return models.AppState{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), nil
}

// Update runs fn against the current state under the write lock and stores its
// result. When fn fails the stored state is left as it was.
func (s *StateStore) Update(ctx context.Context, fn func(models.AppState) (models.AppState, error)) (models.AppState, error) {
	if err := ctx.Err(); err != nil {
		return models.AppState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state.Clone())
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	return next.Clone(), nil
}

// Replace swaps the whole state, used when reseeding.
func (s *StateStore) Replace(state models.AppState) {
	s.mu.Lock()
	s.state = state.Clone()
	s.mu.Unlock()
}

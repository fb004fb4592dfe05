package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/college-events-api/internal/models"
	"github.com/noah-isme/college-events-api/internal/repository"
	"github.com/noah-isme/college-events-api/internal/seed"
)

const (
	adminID       int64 = 1
	coordinatorID int64 = 2
	studentID     int64 = 3
)

var fixedNow = time.Date(2026, time.January, 20, 10, 0, 0, 0, time.UTC)

func newSeededStore(t *testing.T) *repository.StateStore {
	t.Helper()
	state, err := seed.Build(seed.Default(), seed.Options{BcryptCost: bcrypt.MinCost, Now: fixedNow})
	require.NoError(t, err)
	return repository.NewStateStore(state)
}

// actAs moves the session to the given user.
func actAs(t *testing.T, store *repository.StateStore, userID int64) {
	t.Helper()
	_, err := store.Update(context.Background(), func(st models.AppState) (models.AppState, error) {
		st.CurrentUserID = userID
		return st, nil
	})
	require.NoError(t, err)
}

type failingStore struct {
	err error
}

func (f failingStore) Snapshot(context.Context) (models.AppState, error) {
	return models.AppState{}, f.err
}

func (f failingStore) Update(context.Context, func(models.AppState) (models.AppState, error)) (models.AppState, error) {
	return models.AppState{}, f.err
}

var errStoreDown = errors.New("store down")

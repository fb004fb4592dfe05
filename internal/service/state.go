package service

import (
	"context"

	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

type stateStore interface {
	Snapshot(ctx context.Context) (models.AppState, error)
	Update(ctx context.Context, fn func(models.AppState) (models.AppState, error)) (models.AppState, error)
}

var errStaleSession = appErrors.Clone(appErrors.ErrUnauthorized, "session token does not belong to the current user")

// actorIn resolves the acting user. A token minted before a role switch no
// longer matches the session and is refused.
func actorIn(state models.AppState, actorID int64) (models.User, error) {
	if state.CurrentUserID != actorID {
		return models.User{}, errStaleSession
	}
	user, ok := state.CurrentUser()
	if !ok {
		return models.User{}, errStaleSession
	}
	return user, nil
}

func snapshotFor(ctx context.Context, store stateStore, actorID int64) (models.AppState, models.User, error) {
	state, err := store.Snapshot(ctx)
	if err != nil {
		return models.AppState{}, models.User{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read state")
	}
	actor, err := actorIn(state, actorID)
	if err != nil {
		return models.AppState{}, models.User{}, err
	}
	return state, actor, nil
}

// updateAs runs fn inside a store transition after checking the actor.
func updateAs(ctx context.Context, store stateStore, actorID int64, fn func(models.AppState, models.User) (models.AppState, error)) (models.AppState, error) {
	return store.Update(ctx, func(state models.AppState) (models.AppState, error) {
		actor, err := actorIn(state, actorID)
		if err != nil {
			return state, err
		}
		return fn(state, actor)
	})
}

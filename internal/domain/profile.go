package domain

import (
	"net/url"
	"strings"

	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

// UpdateProfile rewrites the actor's name, email and avatar seed. Id and role never change.
// An empty avatar seed falls back to the new name.
func UpdateProfile(state models.AppState, actor models.User, upd models.ProfileUpdate) (models.AppState, models.User, error) {
	name := strings.TrimSpace(upd.Name)
	email := strings.TrimSpace(upd.Email)
	if name == "" || email == "" {
		return state, models.User{}, appErrors.Clone(appErrors.ErrValidation, "name and email are required")
	}
	seed := strings.TrimSpace(upd.AvatarSeed)
	if seed == "" {
		seed = name
	}

	for i, u := range state.Users {
		if u.ID != actor.ID {
			continue
		}
		next := state.Clone()
		next.Users[i].Name = name
		next.Users[i].Email = email
		next.Users[i].AvatarSeed = seed
		return next, next.Users[i], nil
	}
	return state, models.User{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

// AvatarURL builds the image lookup for a seed. The seed is passed through as is.
func AvatarURL(base, seed string) string {
	if base == "" {
		return ""
	}
	return base + "?seed=" + url.QueryEscape(seed)
}

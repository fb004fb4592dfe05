package domain

import "github.com/noah-isme/college-events-api/internal/models"

// SwitchTo makes the first user holding role current and discards the event
// draft. When nobody has the role the state is returned untouched and the
// boolean is false.
func SwitchTo(state models.AppState, role models.UserRole) (models.AppState, models.User, bool) {
	for _, u := range state.Users {
		if u.Role != role {
			continue
		}
		next := state.Clone()
		next.CurrentUserID = u.ID
		next.Draft = models.EventDraft{}
		return next, u, true
	}
	current, _ := state.CurrentUser()
	return state, current, false
}

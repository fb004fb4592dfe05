package domain

import (
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

// Register appends a registration for the pair unless one already exists.
// The boolean reports whether a registration was added.
func Register(regs []models.Registration, userID, eventID int64, ids IDGenerator) ([]models.Registration, bool) {
	if IsRegistered(regs, userID, eventID) {
		return regs, false
	}
	out := make([]models.Registration, len(regs), len(regs)+1)
	copy(out, regs)
	out = append(out, models.Registration{ID: ids.NextID(), UserID: userID, EventID: eventID})
	return out, true
}

// Withdraw removes the registration for the pair if there is one.
func Withdraw(regs []models.Registration, userID, eventID int64) ([]models.Registration, bool) {
	out := make([]models.Registration, 0, len(regs))
	removed := false
	for _, r := range regs {
		if r.UserID == userID && r.EventID == eventID {
			removed = true
			continue
		}
		out = append(out, r)
	}
	if !removed {
		return regs, false
	}
	return out, true
}

// CountForEvent counts registrations that reference the event.
func CountForEvent(regs []models.Registration, eventID int64) int {
	n := 0
	for _, r := range regs {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

// IsRegistered reports whether the user holds a registration for the event.
func IsRegistered(regs []models.Registration, userID, eventID int64) bool {
	for _, r := range regs {
		if r.UserID == userID && r.EventID == eventID {
			return true
		}
	}
	return false
}

// RegistrationsOf returns the user's registrations in ledger order.
func RegistrationsOf(regs []models.Registration, userID int64) []models.Registration {
	out := make([]models.Registration, 0)
	for _, r := range regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// RegisterFor registers the actor for an event they can see.
func RegisterFor(state models.AppState, actor models.User, eventID int64, ids IDGenerator) (models.AppState, bool, error) {
	if err := Require(actor, CapRegister); err != nil {
		return state, false, err
	}
	ev, ok := state.FindEvent(eventID)
	if !ok || !VisibleTo(actor.Role, ev) {
		return state, false, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	regs, added := Register(state.Registrations, actor.ID, eventID, ids)
	if !added {
		return state, false, nil
	}
	next := state.Clone()
	next.Registrations = regs
	return next, true, nil
}

// WithdrawFrom cancels the actor's registration. Missing registrations are a no-op.
func WithdrawFrom(state models.AppState, actor models.User, eventID int64) (models.AppState, bool, error) {
	if err := Require(actor, CapRegister); err != nil {
		return state, false, err
	}
	regs, removed := Withdraw(state.Registrations, actor.ID, eventID)
	if !removed {
		return state, false, nil
	}
	next := state.Clone()
	next.Registrations = regs
	return next, true, nil
}

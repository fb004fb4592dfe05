package domain

import (
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

// ActivityLimit is how many recent registrations the dashboard feed shows.
const ActivityLimit = 5

// Summary holds the dashboard counts and the activity feed.
type Summary struct {
	Students      int
	Events        int
	Registrations int
	Activity      []Activity
}

// Activity is one registration in the feed. UserName and EventTitle are empty
// when the user or event no longer exists.
type Activity struct {
	Registration models.Registration
	UserName     string
	EventTitle   string
}

// Dashboard summarises the campus for admins and coordinators.
func Dashboard(state models.AppState, actor models.User) (Summary, error) {
	if err := Require(actor, CapViewDashboard); err != nil {
		return Summary{}, err
	}
	students := 0
	for _, u := range state.Users {
		if u.Role == models.RoleStudent {
			students++
		}
	}
	return Summary{
		Students:      students,
		Events:        len(state.Events),
		Registrations: len(state.Registrations),
		Activity:      RecentActivity(state, ActivityLimit),
	}, nil
}

// RecentActivity lists the newest registrations first.
func RecentActivity(state models.AppState, limit int) []Activity {
	regs := state.Registrations
	if limit > 0 && len(regs) > limit {
		regs = regs[len(regs)-limit:]
	}
	items := make([]Activity, 0, len(regs))
	for i := len(regs) - 1; i >= 0; i-- {
		item := Activity{Registration: regs[i]}
		if u, ok := state.FindUser(regs[i].UserID); ok {
			item.UserName = u.Name
		}
		if ev, ok := state.FindEvent(regs[i].EventID); ok {
			item.EventTitle = ev.Title
		}
		items = append(items, item)
	}
	return items
}

// Roster lists who registered for an event, in registration order.
func Roster(state models.AppState, actor models.User, eventID int64) (models.Event, []models.RosterEntry, error) {
	if err := Require(actor, CapViewRoster); err != nil {
		return models.Event{}, nil, err
	}
	ev, ok := state.FindEvent(eventID)
	if !ok {
		return models.Event{}, nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	entries := make([]models.RosterEntry, 0)
	for _, r := range state.Registrations {
		if r.EventID != eventID {
			continue
		}
		entry := models.RosterEntry{RegistrationID: r.ID, UserID: r.UserID}
		if u, ok := state.FindUser(r.UserID); ok {
			entry.Name = u.Name
			entry.Email = u.Email
		}
		entries = append(entries, entry)
	}
	return ev, entries, nil
}

package domain

import (
	"sort"
	"strings"

	"github.com/noah-isme/college-events-api/internal/models"
)

// EventQuery holds everything that narrows the event list.
type EventQuery struct {
	Role   models.UserRole
	Search string
	Status models.StatusFilter
	Date   *models.EventDate
}

// VisibleTo reports whether the role may see the event at all. Students only see approved events.
func VisibleTo(role models.UserRole, ev models.Event) bool {
	return role != models.RoleStudent || ev.Status == models.EventStatusApproved
}

// VisibleEvents filters events by role, title search, status and day, then sorts
// them by date. Events on the same day keep their input order. The input slice is
// not modified.
func VisibleEvents(events []models.Event, q EventQuery) []models.Event {
	needle := strings.ToLower(q.Search)
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if !VisibleTo(q.Role, ev) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(ev.Title), needle) {
			continue
		}
		if !q.Status.Matches(ev.Status) {
			continue
		}
		if q.Date != nil && ev.Date != *q.Date {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// DecorateEvents attaches registration counts and the user's own registration flag.
func DecorateEvents(events []models.Event, regs []models.Registration, userID int64) []models.EventView {
	views := make([]models.EventView, len(events))
	for i, ev := range events {
		views[i] = models.EventView{
			Event:             ev,
			RegistrationCount: CountForEvent(regs, ev.ID),
			Registered:        IsRegistered(regs, userID, ev.ID),
		}
	}
	return views
}

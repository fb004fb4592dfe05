package domain

import (
	"strings"

	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

// DeleteOutcome describes what a guarded delete did.
type DeleteOutcome struct {
	Deleted              bool
	RemovedRegistrations int
}

// Publish turns a coordinator's draft into a pending event and clears the draft.
func Publish(state models.AppState, actor models.User, draft models.EventDraft, ids IDGenerator) (models.AppState, models.Event, error) {
	if err := Require(actor, CapPublishEvent); err != nil {
		return state, models.Event{}, err
	}
	title := strings.TrimSpace(draft.Title)
	if title == "" || strings.TrimSpace(draft.Date) == "" {
		return state, models.Event{}, appErrors.Clone(appErrors.ErrValidation, "please provide at least a title and a date")
	}
	date, err := models.ParseEventDate(draft.Date)
	if err != nil {
		return state, models.Event{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event date")
	}

	ev := models.Event{
		ID:          ids.NextID(),
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Date:        date,
		ImageURL:    strings.TrimSpace(draft.ImageURL),
		Status:      models.EventStatusPending,
	}
	next := state.Clone()
	next.Events = append(next.Events, ev)
	next.Draft = models.EventDraft{}
	return next, ev, nil
}

// SaveDraft stores the coordinator's in-progress form.
func SaveDraft(state models.AppState, actor models.User, draft models.EventDraft) (models.AppState, error) {
	if err := Require(actor, CapPublishEvent); err != nil {
		return state, err
	}
	next := state.Clone()
	next.Draft = draft
	return next, nil
}

// SetStatus approves or rejects a pending event. Unknown ids are a no-op;
// events that were already decided cannot change again.
func SetStatus(state models.AppState, actor models.User, eventID int64, status models.EventStatus) (models.AppState, bool, error) {
	if err := Require(actor, CapDecideEvent); err != nil {
		return state, false, err
	}
	if !status.Decided() {
		return state, false, appErrors.Clone(appErrors.ErrValidation, "status must be approved or rejected")
	}
	for i, ev := range state.Events {
		if ev.ID != eventID {
			continue
		}
		if ev.Status.Decided() {
			return state, false, appErrors.Clone(appErrors.ErrConflict, "event is already "+string(ev.Status))
		}
		next := state.Clone()
		next.Events[i].Status = status
		return next, true, nil
	}
	return state, false, nil
}

// DeleteEvent removes an event and every registration pointing at it. Nothing
// happens unless confirmed is true.
func DeleteEvent(state models.AppState, actor models.User, eventID int64, confirmed bool) (models.AppState, DeleteOutcome, error) {
	if err := Require(actor, CapDeleteEvent); err != nil {
		return state, DeleteOutcome{}, err
	}
	if !confirmed {
		return state, DeleteOutcome{}, nil
	}
	if _, ok := state.FindEvent(eventID); !ok {
		return state, DeleteOutcome{}, nil
	}

	next := state.Clone()
	next.Events = next.Events[:0]
	for _, ev := range state.Events {
		if ev.ID != eventID {
			next.Events = append(next.Events, ev)
		}
	}
	next.Registrations = next.Registrations[:0]
	removed := 0
	for _, r := range state.Registrations {
		if r.EventID == eventID {
			removed++
			continue
		}
		next.Registrations = append(next.Registrations, r)
	}
	return next, DeleteOutcome{Deleted: true, RemovedRegistrations: removed}, nil
}

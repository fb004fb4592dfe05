package models

import "strings"

// EventStatus tracks the approval lifecycle of an event.
type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

// Decided reports whether the status is terminal.
func (s EventStatus) Decided() bool {
	return s == EventStatusApproved || s == EventStatusRejected
}

// StatusFilter narrows the event list by status. StatusAll matches everything.
type StatusFilter string

const StatusAll StatusFilter = "all"

// ParseStatusFilter accepts all, pending, approved and rejected. Empty means all.
func ParseStatusFilter(raw string) (StatusFilter, bool) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return StatusAll, true
	case StatusAll, StatusFilter(EventStatusPending), StatusFilter(EventStatusApproved), StatusFilter(EventStatusRejected):
		return f, true
	default:
		return "", false
	}
}

// Matches reports whether an event status passes the filter.
func (f StatusFilter) Matches(status EventStatus) bool {
	return f == StatusAll || f == "" || EventStatus(f) == status
}

// Event is a campus activity proposed by a coordinator.
type Event struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        EventDate   `json:"date"`
	ImageURL    string      `json:"image_url,omitempty"`
	Status      EventStatus `json:"status"`
}

// EventDraft is the coordinator's unsaved event form.
type EventDraft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	ImageURL    string `json:"image_url"`
}

// IsZero reports whether the draft is empty.
func (d EventDraft) IsZero() bool {
	return d == EventDraft{}
}

// EventView decorates an event with registration facts for the current user.
type EventView struct {
	Event
	RegistrationCount int  `json:"registration_count"`
	Registered        bool `json:"registered"`
}

package dto

import "github.com/noah-isme/college-events-api/internal/models"

// EventStatusRequest decides a pending event.
type EventStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// SwitchRoleRequest selects the seeded identity for a role.
type SwitchRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ChangeResult reports whether an idempotent operation changed state.
type ChangeResult struct {
	Changed bool `json:"changed"`
}

// DeleteResult reports the outcome of a guarded delete.
type DeleteResult struct {
	Deleted              bool  `json:"deleted"`
	EventID              int64 `json:"event_id"`
	RemovedRegistrations int   `json:"removed_registrations"`
	ConfirmationRequired bool  `json:"confirmation_required,omitempty"`
}

// EventListRequest captures query parameters for the event list.
type EventListRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Date   string `form:"date"`
}

// RosterResponse is the JSON form of an event roster.
type RosterResponse struct {
	Event   models.Event         `json:"event"`
	Entries []models.RosterEntry `json:"entries"`
}

// RosterFile is a rendered roster download.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RegistrationView pairs one of the user's registrations with its event.
type RegistrationView struct {
	models.Registration
	Event models.Event `json:"event"`
}

// ProfileView is the current user with the derived avatar.
type ProfileView struct {
	User      models.User `json:"user"`
	AvatarURL string      `json:"avatar_url"`
}

// SwitchResult reports the session after a role switch.
type SwitchResult struct {
	Switched bool               `json:"switched"`
	Session  models.SessionInfo `json:"session"`
}

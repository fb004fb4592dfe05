package models

// Registration records that a user intends to take part in an event.
type Registration struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// RosterEntry is one registered participant of an event.
type RosterEntry struct {
	RegistrationID int64  `json:"registration_id"`
	UserID         int64  `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
}

package models

// CalendarCursor is the month shown by the calendar widget. Month is zero based.
type CalendarCursor struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// AppState is the whole in-memory application state of one session.
//
// Transitions never modify a state in place. They take the current value and
// return a new one, so a caller holding an old AppState keeps a consistent view.
type AppState struct {
	Users         []User
	Events        []Event
	Registrations []Registration

	CurrentUserID int64
	Draft         EventDraft
	SelectedDate  *EventDate
	Cursor        CalendarCursor
}

// Clone returns a deep copy.
func (s AppState) Clone() AppState {
	out := s
	out.Users = append([]User(nil), s.Users...)
	out.Events = append([]Event(nil), s.Events...)
	out.Registrations = append([]Registration(nil), s.Registrations...)
	if s.SelectedDate != nil {
		d := *s.SelectedDate
		out.SelectedDate = &d
	}
	return out
}

// CurrentUser returns the session user.
func (s AppState) CurrentUser() (User, bool) {
	return s.FindUser(s.CurrentUserID)
}

// FindUser looks a user up by id.
func (s AppState) FindUser(id int64) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindEvent looks an event up by id.
func (s AppState) FindEvent(id int64) (Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

package dto

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	HasEvents bool   `json:"has_events"`
	Selected  bool   `json:"selected"`
	Today     bool   `json:"today"`
}

// CalendarMonth is the month widget: leading blanks then one cell per day.
type CalendarMonth struct {
	Month        int           `json:"month"`
	Year         int           `json:"year"`
	MonthName    string        `json:"month_name"`
	LeadingBlank int           `json:"leading_blank"`
	Days         []CalendarDay `json:"days"`
	SelectedDate *string       `json:"selected_date,omitempty"`
}

// CalendarNavigateRequest moves the calendar cursor by whole months.
type CalendarNavigateRequest struct {
	Offset int `json:"offset" validate:"required"`
}

// CalendarSelectRequest toggles the selected day.
type CalendarSelectRequest struct {
	Date string `json:"date" validate:"required"`
}

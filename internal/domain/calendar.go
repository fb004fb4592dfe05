package domain

import (
	"time"

	"github.com/noah-isme/college-events-api/internal/models"
)

// Months in the calendar engine are zero based (January is 0).

// DaysInMonth returns the number of days in the month, counting leap years.
func DaysInMonth(month, year int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth returns the weekday of the 1st, with Sunday as 0.
func FirstWeekdayOfMonth(month, year int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// HasEventOn reports whether any event the role can see falls on the date.
func HasEventOn(date models.EventDate, events []models.Event, role models.UserRole) bool {
	for _, ev := range events {
		if ev.Date == date && VisibleTo(role, ev) {
			return true
		}
	}
	return false
}

// ChangeMonth moves a month/year pair by offset months, carrying into the year.
func ChangeMonth(month, year, offset int) (int, int) {
	total := year*12 + month + offset
	newYear := total / 12
	newMonth := total % 12
	if newMonth < 0 {
		newMonth += 12
		newYear--
	}
	return newMonth, newYear
}

// ToggleDate selects clicked, or clears the selection when clicked is already selected.
func ToggleDate(selected *models.EventDate, clicked models.EventDate) *models.EventDate {
	if selected != nil && *selected == clicked {
		return nil
	}
	return &clicked
}

// MonthGrid is one month laid out for a role: LeadingBlank empty cells, then one cell per day.
type MonthGrid struct {
	Month        int
	Year         int
	LeadingBlank int
	Days         []DayCell
	Selected     *models.EventDate
}

// DayCell is one day of a MonthGrid. Selected cells never carry the event marker.
type DayCell struct {
	Date      models.EventDate
	HasEvents bool
	Selected  bool
	Today     bool
}

// BuildMonth lays out the month grid for the role. today marks the current day when it falls in the month.
func BuildMonth(month, year int, events []models.Event, role models.UserRole, selected *models.EventDate, today time.Time) MonthGrid {
	todayDate := models.EventDateOf(today)
	n := DaysInMonth(month, year)
	grid := MonthGrid{
		Month:        month,
		Year:         year,
		LeadingBlank: FirstWeekdayOfMonth(month, year),
		Days:         make([]DayCell, 0, n),
	}
	if selected != nil {
		sel := *selected
		grid.Selected = &sel
	}
	for day := 1; day <= n; day++ {
		date := models.NewEventDate(year, time.Month(month+1), day)
		isSelected := selected != nil && *selected == date
		grid.Days = append(grid.Days, DayCell{
			Date:      date,
			HasEvents: !isSelected && HasEventOn(date, events, role),
			Selected:  isSelected,
			Today:     date == todayDate,
		})
	}
	return grid
}

// NavigateCalendar moves the session cursor.
func NavigateCalendar(state models.AppState, offset int) models.AppState {
	next := state.Clone()
	next.Cursor.Month, next.Cursor.Year = ChangeMonth(state.Cursor.Month, state.Cursor.Year, offset)
	return next
}

// SelectDate toggles the session's selected day.
func SelectDate(state models.AppState, clicked models.EventDate) models.AppState {
	next := state.Clone()
	next.SelectedDate = ToggleDate(state.SelectedDate, clicked)
	return next
}

// ClearSelectedDate drops the day filter.
func ClearSelectedDate(state models.AppState) models.AppState {
	next := state.Clone()
	next.SelectedDate = nil
	return next
}

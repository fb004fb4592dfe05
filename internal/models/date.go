package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventDate is a calendar day without time or zone.
//
// Dates travel as unpadded "year-month-day" strings ("2026-1-5"). Parsing also
// accepts zero-padded parts, so "2026-01-05" and "2026-1-05" name the same day
// and always format back to the canonical form.
type EventDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewEventDate builds a date from its parts without validation.
func NewEventDate(year int, month time.Month, day int) EventDate {
	return EventDate{Year: year, Month: month, Day: day}
}

// EventDateOf returns the calendar day of t in its own location.
func EventDateOf(t time.Time) EventDate {
	y, m, d := t.Date()
	return EventDate{Year: y, Month: m, Day: d}
}

// ParseEventDate parses a year-month-day string.
func ParseEventDate(raw string) (EventDate, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return EventDate{}, fmt.Errorf("invalid date %q: expected year-month-day", raw)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if !allDigits(p) {
			return EventDate{}, fmt.Errorf("invalid date %q: expected year-month-day", raw)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return EventDate{}, fmt.Errorf("invalid date %q: expected year-month-day", raw)
		}
		nums[i] = n
	}
	d := EventDate{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if d.Year < 1 || !d.valid() {
		return EventDate{}, fmt.Errorf("invalid date %q: no such day", raw)
	}
	return d, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MustParseEventDate is ParseEventDate for literals known to be valid.
func MustParseEventDate(raw string) EventDate {
	d, err := ParseEventDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d EventDate) valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return EventDateOf(d.Time()) == d
}

// IsZero reports whether the date is unset.
func (d EventDate) IsZero() bool {
	return d == EventDate{}
}

// Time returns midnight UTC of the day.
func (d EventDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1 in calendar order.
func (d EventDate) Compare(o EventDate) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d EventDate) Before(o EventDate) bool {
	return d.Compare(o) < 0
}

// String formats the canonical unpadded form.
func (d EventDate) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d-%d-%d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d EventDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input leaves a zero date.
func (d *EventDate) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*d = EventDate{}
		return nil
	}
	parsed, err := ParseEventDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

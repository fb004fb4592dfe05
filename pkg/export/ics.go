package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// CalendarEntry is one all-day event in an iCalendar feed.
type CalendarEntry struct {
	UID         string
	Day         time.Time
	Summary     string
	Description string
	URL         string
}

// ICSExporter writes RFC 5545 calendars.
type ICSExporter struct {
	ProductID string
	now       func() time.Time
}

// NewICSExporter builds an exporter stamping entries with the current time.
func NewICSExporter(productID string) *ICSExporter {
	return &ICSExporter{ProductID: productID, now: time.Now}
}

// WithClock overrides the DTSTAMP clock.
func (e *ICSExporter) WithClock(now func() time.Time) *ICSExporter {
	e.now = now
	return e
}

// Render produces the calendar with CRLF line endings.
func (e *ICSExporter) Render(name string, entries []CalendarEntry) []byte {
	var buf bytes.Buffer
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteString("\r\n")
	}

	stamp := e.now().UTC().Format("20060102T150405Z")
	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", e.ProductID)
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	if name != "" {
		line("X-WR-CALNAME:%s", escapeText(name))
	}
	for _, entry := range entries {
		day := time.Date(entry.Day.Year(), entry.Day.Month(), entry.Day.Day(), 0, 0, 0, 0, time.UTC)
		line("BEGIN:VEVENT")
		line("UID:%s", entry.UID)
		line("DTSTAMP:%s", stamp)
		line("DTSTART;VALUE=DATE:%s", day.Format("20060102"))
		line("DTEND;VALUE=DATE:%s", day.AddDate(0, 0, 1).Format("20060102"))
		line("SUMMARY:%s", escapeText(entry.Summary))
		if entry.Description != "" {
			line("DESCRIPTION:%s", escapeText(entry.Description))
		}
		if entry.URL != "" {
			line("URL:%s", entry.URL)
		}
		line("END:VEVENT")
	}
	line("END:VCALENDAR")
	return buf.Bytes()
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-events-api/internal/dto"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
	"github.com/noah-isme/college-events-api/pkg/export"
)

func newCalendarService(t *testing.T) (*CalendarService, func(int64)) {
	t.Helper()
	store := newSeededStore(t)
	ics := export.NewICSExporter(feedProductID).WithClock(func() time.Time { return fixedNow })
	svc := NewCalendarService(store, nil, nil, ics).WithClock(func() time.Time { return fixedNow })
	return svc, func(id int64) { actAs(t, store, id) }
}

func intPtr(v int) *int { return &v }

func TestCalendarServiceMonthAtCursor(t *testing.T) {
	svc, _ := newCalendarService(t)

	view, err := svc.Month(context.Background(), adminID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, view.Month)
	assert.Equal(t, 2026, view.Year)
	assert.Equal(t, 4, view.LeadingBlank)
	assert.Equal(t, "January", view.MonthName)
	require.Len(t, view.Days, 31)
	assert.Equal(t, 20, view.Days[19].Day)
	assert.Equal(t, "2026-1-20", view.Days[19].Date)
	assert.True(t, view.Days[19].Today)
	assert.True(t, view.Days[19].HasEvents)
}

func TestCalendarServiceMonthExplicit(t *testing.T) {
	svc, _ := newCalendarService(t)
	ctx := context.Background()

	view, err := svc.Month(ctx, adminID, intPtr(1), intPtr(2024))
	require.NoError(t, err)
	assert.Len(t, view.Days, 29)

	_, err = svc.Month(ctx, adminID, intPtr(12), intPtr(2024))
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Month(ctx, adminID, intPtr(1), nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCalendarServiceNavigate(t *testing.T) {
	svc, _ := newCalendarService(t)
	ctx := context.Background()

	view, err := svc.Navigate(ctx, adminID, dto.CalendarNavigateRequest{Offset: -1})
	require.NoError(t, err)
	assert.Equal(t, 11, view.Month)
	assert.Equal(t, 2025, view.Year)

	view, err = svc.Month(ctx, adminID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2025, view.Year)

	_, err = svc.Navigate(ctx, adminID, dto.CalendarNavigateRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCalendarServiceSelectToggles(t *testing.T) {
	svc, _ := newCalendarService(t)
	ctx := context.Background()

	view, err := svc.Select(ctx, adminID, dto.CalendarSelectRequest{Date: "2026-01-15"})
	require.NoError(t, err)
	require.NotNil(t, view.SelectedDate)
	assert.Equal(t, "2026-1-15", *view.SelectedDate)
	assert.False(t, view.Days[14].HasEvents)

	view, err = svc.Select(ctx, adminID, dto.CalendarSelectRequest{Date: "2026-1-15"})
	require.NoError(t, err)
	assert.Nil(t, view.SelectedDate)

	_, err = svc.Select(ctx, adminID, dto.CalendarSelectRequest{Date: "2026-1-15"})
	require.NoError(t, err)
	view, err = svc.Clear(ctx, adminID)
	require.NoError(t, err)
	assert.Nil(t, view.SelectedDate)

	_, err = svc.Select(ctx, adminID, dto.CalendarSelectRequest{Date: "15/01/2026"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCalendarServiceFeedFollowsRole(t *testing.T) {
	svc, act := newCalendarService(t)
	ctx := context.Background()

	feed, err := svc.Feed(ctx, adminID)
	require.NoError(t, err)
	body := string(feed)
	assert.Equal(t, 3, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "SUMMARY:Cultural Night (pending)")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20260105")

	act(studentID)
	feed, err = svc.Feed(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(feed), "BEGIN:VEVENT"))
	assert.NotContains(t, string(feed), "Cultural Night")
}

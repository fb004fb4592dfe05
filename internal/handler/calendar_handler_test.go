package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
)

type fakeCalendarSrv struct {
	month, year *int
	navigate    dto.CalendarNavigateRequest
	selected    dto.CalendarSelectRequest
	cleared     bool
	feed        []byte
	err         error
}

func (f *fakeCalendarSrv) view() (*dto.CalendarMonth, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CalendarMonth{Month: 0, Year: 2026, MonthName: "January", LeadingBlank: 4}, nil
}

func (f *fakeCalendarSrv) Month(_ context.Context, _ int64, month, year *int) (*dto.CalendarMonth, error) {
	f.month, f.year = month, year
	return f.view()
}

func (f *fakeCalendarSrv) Navigate(_ context.Context, _ int64, req dto.CalendarNavigateRequest) (*dto.CalendarMonth, error) {
	f.navigate = req
	return f.view()
}

func (f *fakeCalendarSrv) Select(_ context.Context, _ int64, req dto.CalendarSelectRequest) (*dto.CalendarMonth, error) {
	f.selected = req
	return f.view()
}

func (f *fakeCalendarSrv) Clear(context.Context, int64) (*dto.CalendarMonth, error) {
	f.cleared = true
	return f.view()
}

func (f *fakeCalendarSrv) Feed(context.Context, int64) ([]byte, error) {
	return f.feed, f.err
}

func TestCalendarHandlerMonthQuery(t *testing.T) {
	srv := &fakeCalendarSrv{}
	h := NewCalendarHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/calendar", nil)
	asUser(c, 3, models.RoleStudent)
	h.Month(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, srv.month)
	assert.Nil(t, srv.year)

	c, rec = newTestContext(http.MethodGet, "/calendar?month=11&year=2025", nil)
	asUser(c, 3, models.RoleStudent)
	h.Month(c)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.month)
	assert.Equal(t, 11, *srv.month)
	assert.Equal(t, 2025, *srv.year)

	var view dto.CalendarMonth
	decode(t, rec, &view)
	assert.Equal(t, "January", view.MonthName)
	assert.Equal(t, 4, view.LeadingBlank)
}

func TestCalendarHandlerMonthRejectsNonNumeric(t *testing.T) {
	h := NewCalendarHandler(&fakeCalendarSrv{})
	c, rec := newTestContext(http.MethodGet, "/calendar?month=jan", nil)
	asUser(c, 3, models.RoleStudent)

	h.Month(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarHandlerNavigateSelectClear(t *testing.T) {
	srv := &fakeCalendarSrv{}
	h := NewCalendarHandler(srv)

	c, rec := newTestContext(http.MethodPost, "/calendar/navigate", map[string]int{"offset": -1})
	asUser(c, 1, models.RoleAdmin)
	h.Navigate(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, srv.navigate.Offset)

	c, rec = newTestContext(http.MethodPost, "/calendar/select", map[string]string{"date": "2026-01-05"})
	asUser(c, 1, models.RoleAdmin)
	h.Select(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-01-05", srv.selected.Date)

	c, rec = newTestContext(http.MethodDelete, "/calendar/select", nil)
	asUser(c, 1, models.RoleAdmin)
	h.Clear(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.cleared)
}

func TestCalendarHandlerFeed(t *testing.T) {
	h := NewCalendarHandler(&fakeCalendarSrv{feed: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")})
	c, rec := newTestContext(http.MethodGet, "/calendar/feed.ics", nil)
	asUser(c, 3, models.RoleStudent)

	h.Feed(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
}

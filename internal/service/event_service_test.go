package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

func newEventService(t *testing.T) (*EventService, *MetricsService, func(int64)) {
	t.Helper()
	store := newSeededStore(t)
	metrics := NewMetricsService()
	svc := NewEventService(EventServiceParams{Store: store, IDs: domain.NewSequenceIDs(100), Metrics: metrics})
	return svc, metrics, func(id int64) { actAs(t, store, id) }
}

func titles(views []models.EventView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Title
	}
	return out
}

func TestEventServiceListByRole(t *testing.T) {
	svc, _, act := newEventService(t)
	ctx := context.Background()

	events, err := svc.List(ctx, adminID, dto.EventListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports Meet", "Annual Tech Fest", "Cultural Night"}, titles(events))

	act(studentID)
	events, err = svc.List(ctx, studentID, dto.EventListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports Meet", "Annual Tech Fest"}, titles(events))
	assert.True(t, events[0].Registered)
	assert.Equal(t, 1, events[0].RegistrationCount)
}

func TestEventServiceListFilters(t *testing.T) {
	svc, _, _ := newEventService(t)
	ctx := context.Background()

	events, err := svc.List(ctx, adminID, dto.EventListRequest{Search: "NIGHT", Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cultural Night"}, titles(events))

	events, err = svc.List(ctx, adminID, dto.EventListRequest{Search: "Fest "})
	require.NoError(t, err)
	assert.Empty(t, events, "search text is matched as given, including spaces")

	events, err = svc.List(ctx, adminID, dto.EventListRequest{Search: "ch Fe"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Annual Tech Fest"}, titles(events))

	events, err = svc.List(ctx, adminID, dto.EventListRequest{Date: "2026-01-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports Meet"}, titles(events))

	_, err = svc.List(ctx, adminID, dto.EventListRequest{Status: "archived"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.List(ctx, adminID, dto.EventListRequest{Date: "tomorrow"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestEventServiceListFallsBackToSelectedDate(t *testing.T) {
	store := newSeededStore(t)
	svc := NewEventService(EventServiceParams{Store: store})
	cal := NewCalendarService(store, nil, nil, nil).WithClock(func() time.Time { return fixedNow })
	ctx := context.Background()

	_, err := cal.Select(ctx, adminID, dto.CalendarSelectRequest{Date: "2026-1-20"})
	require.NoError(t, err)

	events, err := svc.List(ctx, adminID, dto.EventListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cultural Night"}, titles(events))

	events, err = svc.List(ctx, adminID, dto.EventListRequest{Date: "2026-1-15"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Annual Tech Fest"}, titles(events))
}

func TestEventServiceRejectsStaleActor(t *testing.T) {
	svc, _, _ := newEventService(t)

	_, err := svc.List(context.Background(), studentID, dto.EventListRequest{})

	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestEventServiceGetHidesPendingFromStudents(t *testing.T) {
	svc, _, act := newEventService(t)
	ctx := context.Background()

	view, err := svc.Get(ctx, adminID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Cultural Night", view.Title)

	act(studentID)
	_, err = svc.Get(ctx, studentID, 2)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	_, err = svc.Get(ctx, studentID, 99)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestEventServicePublishAndApprove(t *testing.T) {
	svc, metrics, act := newEventService(t)
	ctx := context.Background()

	act(coordinatorID)
	_, err := svc.SaveDraft(ctx, coordinatorID, models.EventDraft{Title: "Robo"})
	require.NoError(t, err)

	created, err := svc.Publish(ctx, coordinatorID, models.EventDraft{Title: "Robo Wars", Date: "2026-2-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	assert.Equal(t, models.EventStatusPending, created.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.published))

	draft, err := svc.Draft(ctx, coordinatorID)
	require.NoError(t, err)
	assert.True(t, draft.IsZero())

	act(adminID)
	changed, err := svc.SetStatus(ctx, adminID, created.ID, dto.EventStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.decisions.WithLabelValues("approved")))

	_, err = svc.SetStatus(ctx, adminID, created.ID, dto.EventStatusRequest{Status: "rejected"})
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))

	act(studentID)
	events, err := svc.List(ctx, studentID, dto.EventListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports Meet", "Annual Tech Fest", "Robo Wars"}, titles(events))
}

func TestEventServicePublishValidation(t *testing.T) {
	svc, metrics, act := newEventService(t)
	ctx := context.Background()
	act(coordinatorID)

	_, err := svc.Publish(ctx, coordinatorID, models.EventDraft{Title: "No date"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Publish(ctx, coordinatorID, models.EventDraft{Title: "Bad date", Date: "2026-2-31"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	act(adminID)
	_, err = svc.Publish(ctx, adminID, models.EventDraft{Title: "Admin event", Date: "2026-2-1"})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.published))
}

func TestEventServiceSetStatusValidation(t *testing.T) {
	svc, _, _ := newEventService(t)

	_, err := svc.SetStatus(context.Background(), adminID, 2, dto.EventStatusRequest{Status: "pending"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	changed, err := svc.SetStatus(context.Background(), adminID, 404, dto.EventStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestEventServiceDelete(t *testing.T) {
	svc, metrics, _ := newEventService(t)
	ctx := context.Background()

	res, err := svc.Delete(ctx, adminID, 1, false)
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.True(t, res.ConfirmationRequired)

	res, err = svc.Delete(ctx, adminID, 1, true)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Equal(t, 1, res.RemovedRegistrations)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.deleted))

	_, err = svc.Get(ctx, adminID, 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestEventServiceRosterFiles(t *testing.T) {
	svc, _, act := newEventService(t)
	ctx := context.Background()

	roster, err := svc.Roster(ctx, adminID, 1)
	require.NoError(t, err)
	require.Len(t, roster.Entries, 1)
	assert.Equal(t, "John Doe", roster.Entries[0].Name)

	csvFile, err := svc.RosterFile(ctx, adminID, 1, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "event-1-roster.csv", csvFile.Filename)
	assert.Equal(t, "text/csv", csvFile.ContentType)
	assert.Equal(t, "Registration,User,Name,Email\n1,3,John Doe,stu@college.edu\n", string(csvFile.Body))

	pdfFile, err := svc.RosterFile(ctx, adminID, 1, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfFile.Body, []byte("%PDF")))
	assert.True(t, strings.HasSuffix(pdfFile.Filename, ".pdf"))

	_, err = svc.RosterFile(ctx, adminID, 1, "xlsx")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	act(studentID)
	_, err = svc.RosterFile(ctx, studentID, 1, "csv")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestEventServiceStoreFailure(t *testing.T) {
	svc := NewEventService(EventServiceParams{Store: failingStore{err: errStoreDown}})

	_, err := svc.List(context.Background(), adminID, dto.EventListRequest{})

	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
}

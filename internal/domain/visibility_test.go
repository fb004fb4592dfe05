package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-events-api/internal/models"
)

func TestVisibleEventsStudentSeesApprovedOnly(t *testing.T) {
	st := seedState()

	got := VisibleEvents(st.Events, EventQuery{Role: models.RoleStudent, Status: models.StatusAll})

	assert.Equal(t, []int64{3, 1}, eventIDs(got))
	for _, ev := range got {
		assert.Equal(t, models.EventStatusApproved, ev.Status)
	}
}

func TestVisibleEventsAdminSeesEverythingSortedByDay(t *testing.T) {
	st := seedState()

	got := VisibleEvents(st.Events, EventQuery{Role: models.RoleAdmin, Status: models.StatusAll})

	// 2026-1-5 < 2026-1-15 < 2026-1-20 even though the strings sort differently.
	assert.Equal(t, []int64{3, 1, 2}, eventIDs(got))
}

func TestVisibleEventsStudentNeverSeesUndecided(t *testing.T) {
	events := []models.Event{
		{ID: 1, Status: models.EventStatusPending},
		{ID: 2, Status: models.EventStatusRejected},
		{ID: 3, Status: models.EventStatusApproved},
	}
	for _, filter := range []models.StatusFilter{models.StatusAll, "pending", "rejected", "approved"} {
		for _, ev := range VisibleEvents(events, EventQuery{Role: models.RoleStudent, Status: filter}) {
			assert.Equal(t, models.EventStatusApproved, ev.Status, "filter %s", filter)
		}
	}
}

func TestVisibleEventsSearchIsCaseInsensitiveSubstring(t *testing.T) {
	st := seedState()

	for _, search := range []string{"", "fest", "NIGHT", "t", "meet", "zzz"} {
		got := VisibleEvents(st.Events, EventQuery{Role: models.RoleAdmin, Status: models.StatusAll, Search: search})
		kept := map[int64]bool{}
		for _, ev := range got {
			kept[ev.ID] = true
			assert.Contains(t, strings.ToLower(ev.Title), strings.ToLower(search))
		}
		for _, ev := range st.Events {
			if !kept[ev.ID] {
				assert.NotContains(t, strings.ToLower(ev.Title), strings.ToLower(search))
			}
		}
	}
}

func TestVisibleEventsStatusAndDateFiltersAreANDed(t *testing.T) {
	st := seedState()
	jan15 := models.MustParseEventDate("2026-1-15")

	got := VisibleEvents(st.Events, EventQuery{Role: models.RoleAdmin, Status: "approved", Date: &jan15})
	assert.Equal(t, []int64{1}, eventIDs(got))

	got = VisibleEvents(st.Events, EventQuery{Role: models.RoleAdmin, Status: "pending", Date: &jan15})
	assert.Empty(t, got)

	got = VisibleEvents(st.Events, EventQuery{Role: models.RoleAdmin, Status: "pending"})
	assert.Equal(t, []int64{2}, eventIDs(got))
}

func TestVisibleEventsDateFilterMatchesPaddedSeedDates(t *testing.T) {
	st := seedState()
	jan5, err := models.ParseEventDate("2026-1-5")
	require.NoError(t, err)

	got := VisibleEvents(st.Events, EventQuery{Role: models.RoleStudent, Status: models.StatusAll, Date: &jan5})

	assert.Equal(t, []int64{3}, eventIDs(got))
}

func TestVisibleEventsOrderIsIndependentOfInputPermutation(t *testing.T) {
	st := seedState()
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	for _, p := range perms {
		events := []models.Event{st.Events[p[0]], st.Events[p[1]], st.Events[p[2]]}
		got := VisibleEvents(events, EventQuery{Role: models.RoleAdmin, Status: models.StatusAll})
		assert.Equal(t, []int64{3, 1, 2}, eventIDs(got), "permutation %v", p)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].Date.Before(got[i-1].Date))
		}
	}
}

func TestVisibleEventsKeepsInsertionOrderOnTies(t *testing.T) {
	day := models.MustParseEventDate("2026-3-1")
	events := []models.Event{
		{ID: 9, Date: day, Status: models.EventStatusApproved},
		{ID: 4, Date: models.MustParseEventDate("2026-2-1"), Status: models.EventStatusApproved},
		{ID: 7, Date: day, Status: models.EventStatusApproved},
	}

	got := VisibleEvents(events, EventQuery{Role: models.RoleStudent})

	assert.Equal(t, []int64{4, 9, 7}, eventIDs(got))
	assert.Equal(t, []int64{9, 4, 7}, eventIDs(events))
}

func TestDecorateEventsCountsRegistrations(t *testing.T) {
	st := seedState()

	views := DecorateEvents(st.Events, st.Registrations, student.ID)

	require.Len(t, views, 3)
	assert.Equal(t, 1, views[0].RegistrationCount)
	assert.True(t, views[0].Registered)
	assert.Equal(t, 0, views[1].RegistrationCount)
	assert.False(t, views[1].Registered)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

func TestDashboardServiceSummary(t *testing.T) {
	store := newSeededStore(t)
	svc := NewDashboardService(store, nil, "https://avatars.test")

	summary, err := svc.Summary(context.Background(), adminID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Students)
	assert.Equal(t, 3, summary.Events)
	assert.Equal(t, 2, summary.Registrations)
	require.Len(t, summary.Activity, 2)
	assert.Equal(t, "Sports Meet", summary.Activity[0].EventTitle)
	assert.Equal(t, "Annual Tech Fest", summary.Activity[1].EventTitle)
	assert.Equal(t, int64(2), summary.Activity[0].RegistrationID)
	assert.Equal(t, "https://avatars.test?seed=John+Doe", summary.Activity[0].AvatarURL)

	actAs(t, store, studentID)
	_, err = svc.Summary(context.Background(), studentID)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestDashboardServiceLeavesAvatarEmptyForMissingUser(t *testing.T) {
	store := newSeededStore(t)
	_, err := store.Update(context.Background(), func(st models.AppState) (models.AppState, error) {
		st.Registrations = append(st.Registrations, models.Registration{ID: 9, UserID: 50, EventID: 1})
		return st, nil
	})
	require.NoError(t, err)
	svc := NewDashboardService(store, nil, "https://avatars.test")

	summary, err := svc.Summary(context.Background(), adminID)
	require.NoError(t, err)

	require.NotEmpty(t, summary.Activity)
	assert.Equal(t, int64(9), summary.Activity[0].RegistrationID)
	assert.Empty(t, summary.Activity[0].UserName)
	assert.Empty(t, summary.Activity[0].AvatarURL)
}

func TestDashboardServiceStoreFailure(t *testing.T) {
	svc := NewDashboardService(failingStore{err: errStoreDown}, nil, "")

	_, err := svc.Summary(context.Background(), adminID)

	assert.ErrorIs(t, err, errStoreDown)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()
	return NewSessionService(newSeededStore(t), nil, nil, SessionConfig{
		Secret:        "test-secret",
		TTL:           time.Hour,
		AvatarBaseURL: "https://avatars.test/svg",
	})
}

func TestSessionServiceCurrentIssuesValidToken(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	info, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminID, info.User.ID)
	assert.Equal(t, "https://avatars.test/svg?seed=Main+Admin", info.AvatarURL)
	assert.Equal(t, int64(3600), info.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, info.Token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestSessionServiceSwitchInvalidatesOldToken(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	before, err := svc.Current(ctx)
	require.NoError(t, err)

	res, err := svc.Switch(ctx, dto.SwitchRoleRequest{Role: "Student"})
	require.NoError(t, err)
	assert.True(t, res.Switched)
	assert.Equal(t, studentID, res.Session.User.ID)

	_, err = svc.ValidateToken(ctx, before.Token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	claims, err := svc.ValidateToken(ctx, res.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestSessionServiceSwitchValidation(t *testing.T) {
	svc := newSessionService(t)

	_, err := svc.Switch(context.Background(), dto.SwitchRoleRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Switch(context.Background(), dto.SwitchRoleRequest{Role: "dean"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestSessionServiceSwitchWithoutMatchingUser(t *testing.T) {
	store := newSeededStore(t)
	_, err := store.Update(context.Background(), func(st models.AppState) (models.AppState, error) {
		st.Users = st.Users[:2]
		return st, nil
	})
	require.NoError(t, err)
	svc := NewSessionService(store, nil, nil, SessionConfig{Secret: "s"})

	res, err := svc.Switch(context.Background(), dto.SwitchRoleRequest{Role: "student"})
	require.NoError(t, err)
	assert.False(t, res.Switched)
	assert.Equal(t, adminID, res.Session.User.ID)
}

func TestSessionServiceRejectsBadTokens(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	info, err := svc.Current(ctx)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, info.Token+"x")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	other := NewSessionService(newSeededStore(t), nil, nil, SessionConfig{Secret: "other-secret"})
	_, err = other.ValidateToken(ctx, info.Token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(ctx, info.Token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized), "expired")
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/dto"
)

// DashboardService composes the statistics tiles and the activity feed.
type DashboardService struct {
	store         stateStore
	logger        *zap.Logger
	avatarBaseURL string
}

// NewDashboardService constructs the service.
func NewDashboardService(store stateStore, logger *zap.Logger, avatarBaseURL string) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, logger: logger, avatarBaseURL: avatarBaseURL}
}

// Summary returns the counts and the newest registrations.
func (s *DashboardService) Summary(ctx context.Context, actorID int64) (*dto.DashboardSummary, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	summary, err := domain.Dashboard(state, actor)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardSummary{
		Students:      summary.Students,
		Events:        summary.Events,
		Registrations: summary.Registrations,
		Activity:      make([]dto.ActivityItem, 0, len(summary.Activity)),
	}
	for _, a := range summary.Activity {
		item := dto.ActivityItem{
			RegistrationID: a.Registration.ID,
			UserID:         a.Registration.UserID,
			UserName:       a.UserName,
			EventID:        a.Registration.EventID,
			EventTitle:     a.EventTitle,
		}
		// The feed keys avatars by display name.
		if a.UserName != "" {
			item.AvatarURL = domain.AvatarURL(s.avatarBaseURL, a.UserName)
		}
		out.Activity = append(out.Activity, item)
	}
	return out, nil
}

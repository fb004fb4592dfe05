package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

// ProfileConfig tunes the profile editor.
type ProfileConfig struct {
	SaveDelay     time.Duration
	AvatarBaseURL string
}

// ProfileService edits the current user's name, email and avatar.
type ProfileService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger
	config    ProfileConfig
	sleep     func(time.Duration)
}

// NewProfileService constructs the service.
func NewProfileService(store stateStore, validate *validator.Validate, logger *zap.Logger, config ProfileConfig) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{store: store, validator: validate, logger: logger, config: config, sleep: time.Sleep}
}

// WithSleeper replaces the save delay implementation.
func (s *ProfileService) WithSleeper(sleep func(time.Duration)) *ProfileService {
	s.sleep = sleep
	return s
}

// Get returns the current user's profile.
func (s *ProfileService) Get(ctx context.Context, actorID int64) (*dto.ProfileView, error) {
	_, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	return s.view(actor), nil
}

// Update validates the form, waits out the save delay and commits. Once the
// delay has started the update always goes through.
func (s *ProfileService) Update(ctx context.Context, actorID int64, req models.ProfileUpdate) (*dto.ProfileView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	_, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	if s.config.SaveDelay > 0 {
		s.sleep(s.config.SaveDelay)
	}

	// The edit belongs to the user resolved above even if the session moved on during the delay.
	var updated models.User
	_, err = s.store.Update(context.WithoutCancel(ctx), func(state models.AppState) (models.AppState, error) {
		next, u, err := domain.UpdateProfile(state, actor, req)
		updated = u
		return next, err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", zap.Int64("user_id", updated.ID))
	return s.view(updated), nil
}

func (s *ProfileService) view(u models.User) *dto.ProfileView {
	return &dto.ProfileView{User: u, AvatarURL: domain.AvatarURL(s.config.AvatarBaseURL, u.AvatarSeed)}
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
)

// Registration ledger actions used as metric labels.
const (
	RegistrationActionRegister = "register"
	RegistrationActionWithdraw = "withdraw"
)

// RegistrationService lets students join and leave events.
type RegistrationService struct {
	store   stateStore
	ids     domain.IDGenerator
	logger  *zap.Logger
	metrics *MetricsService
}

// NewRegistrationService constructs the service.
func NewRegistrationService(store stateStore, ids domain.IDGenerator, logger *zap.Logger, metrics *MetricsService) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = domain.NewClockIDs(nil, 0)
	}
	return &RegistrationService{store: store, ids: ids, logger: logger, metrics: metrics}
}

// Register signs the current student up. Registering twice changes nothing.
func (s *RegistrationService) Register(ctx context.Context, actorID, eventID int64) (bool, error) {
	var added bool
	_, err := updateAs(ctx, s.store, actorID, func(state models.AppState, actor models.User) (models.AppState, error) {
		next, ok, err := domain.RegisterFor(state, actor, eventID, s.ids)
		added = ok
		return next, err
	})
	if err != nil {
		return false, err
	}
	if added {
		s.metrics.RegistrationChanged(RegistrationActionRegister)
		s.logger.Info("registered for event", zap.Int64("user_id", actorID), zap.Int64("event_id", eventID))
	}
	return added, nil
}

// Withdraw cancels the current student's registration if there is one.
func (s *RegistrationService) Withdraw(ctx context.Context, actorID, eventID int64) (bool, error) {
	var removed bool
	_, err := updateAs(ctx, s.store, actorID, func(state models.AppState, actor models.User) (models.AppState, error) {
		next, ok, err := domain.WithdrawFrom(state, actor, eventID)
		removed = ok
		return next, err
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.metrics.RegistrationChanged(RegistrationActionWithdraw)
		s.logger.Info("withdrew from event", zap.Int64("user_id", actorID), zap.Int64("event_id", eventID))
	}
	return removed, nil
}

// Mine lists the current user's registrations with their events, in ledger order.
func (s *RegistrationService) Mine(ctx context.Context, actorID int64) ([]dto.RegistrationView, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	regs := domain.RegistrationsOf(state.Registrations, actor.ID)
	views := make([]dto.RegistrationView, 0, len(regs))
	for _, r := range regs {
		ev, ok := state.FindEvent(r.EventID)
		if !ok || !domain.VisibleTo(actor.Role, ev) {
			continue
		}
		views = append(views, dto.RegistrationView{Registration: r, Event: ev})
	}
	return views, nil
}

package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/handler"
	"github.com/noah-isme/college-events-api/internal/models"
	"github.com/noah-isme/college-events-api/internal/repository"
	"github.com/noah-isme/college-events-api/internal/service"
	"github.com/noah-isme/college-events-api/pkg/config"
	"github.com/noah-isme/college-events-api/pkg/export"
)

// NewApplication wires the state store, services and handlers around the seeded state.
func NewApplication(cfg *config.Config, logr *zap.Logger, state models.AppState) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	store := repository.NewStateStore(state)
	ids := idGenerator(cfg.IDs.Strategy, state)
	validate := validator.New()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	sessions := service.NewSessionService(store, validate, logr.Named("session"), service.SessionConfig{
		Secret:        cfg.Session.Secret,
		TTL:           cfg.Session.TTL,
		AvatarBaseURL: cfg.Profile.AvatarBaseURL,
	})
	events := service.NewEventService(service.EventServiceParams{
		Store:     store,
		IDs:       ids,
		Validator: validate,
		Logger:    logr.Named("events"),
		Metrics:   metrics,
		CSV:       export.NewCSVExporter(),
		PDF:       export.NewPDFExporter(),
	})
	registrations := service.NewRegistrationService(store, ids, logr.Named("registrations"), metrics)
	calendar := service.NewCalendarService(store, validate, logr.Named("calendar"), nil)
	profile := service.NewProfileService(store, validate, logr.Named("profile"), service.ProfileConfig{
		SaveDelay:     cfg.Profile.SaveDelay,
		AvatarBaseURL: cfg.Profile.AvatarBaseURL,
	})
	dashboard := service.NewDashboardService(store, logr.Named("dashboard"), cfg.Profile.AvatarBaseURL)

	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logr,
		Sessions: sessions,
		Metrics:  metrics,
	}, Handlers{
		Events:        handler.NewEventHandler(events),
		Registrations: handler.NewRegistrationHandler(registrations),
		Calendar:      handler.NewCalendarHandler(calendar),
		Session:       handler.NewSessionHandler(sessions),
		Profile:       handler.NewProfileHandler(profile),
		Dashboard:     handler.NewDashboardHandler(dashboard),
		Metrics:       handler.NewMetricsHandler(metrics, sessions),
	})
}

// idGenerator picks the configured id strategy. Both start above every seeded id.
func idGenerator(strategy string, state models.AppState) domain.IDGenerator {
	highest := domain.MaxID(state)
	if strategy == config.IDStrategySequence {
		return domain.NewSequenceIDs(highest + 1)
	}
	return domain.NewClockIDs(nil, highest)
}

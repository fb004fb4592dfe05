package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
	"github.com/noah-isme/college-events-api/pkg/export"
)

// Roster download formats.
const (
	RosterFormatJSON = "json"
	RosterFormatCSV  = "csv"
	RosterFormatPDF  = "pdf"
)

var rosterColumns = []string{"Registration", "User", "Name", "Email"}

type csvRenderer interface {
	Render(t export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(t export.Table, subtitle string) ([]byte, error)
}

// EventService covers the event list and the approval lifecycle.
type EventService struct {
	store     stateStore
	ids       domain.IDGenerator
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	csv       csvRenderer
	pdf       pdfRenderer
}

// EventServiceParams groups constructor dependencies.
type EventServiceParams struct {
	Store     stateStore
	IDs       domain.IDGenerator
	Validator *validator.Validate
	Logger    *zap.Logger
	Metrics   *MetricsService
	CSV       csvRenderer
	PDF       pdfRenderer
}

// NewEventService constructs the service.
func NewEventService(params EventServiceParams) *EventService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.IDs == nil {
		params.IDs = domain.NewClockIDs(nil, 0)
	}
	if params.CSV == nil {
		params.CSV = export.NewCSVExporter()
	}
	if params.PDF == nil {
		params.PDF = export.NewPDFExporter()
	}
	return &EventService{
		store:     params.Store,
		ids:       params.IDs,
		validator: params.Validator,
		logger:    params.Logger,
		metrics:   params.Metrics,
		csv:       params.CSV,
		pdf:       params.PDF,
	}
}

// List returns the events the current user may see. Without an explicit date the
// session's selected calendar day narrows the list.
func (s *EventService) List(ctx context.Context, actorID int64, req dto.EventListRequest) ([]models.EventView, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	status, ok := models.ParseStatusFilter(req.Status)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of all, pending, approved, rejected")
	}
	query := domain.EventQuery{Role: actor.Role, Search: req.Search, Status: status}
	if raw := strings.TrimSpace(req.Date); raw != "" {
		date, err := models.ParseEventDate(raw)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date filter")
		}
		query.Date = &date
	} else if state.SelectedDate != nil {
		date := *state.SelectedDate
		query.Date = &date
	}

	events := domain.VisibleEvents(state.Events, query)
	return domain.DecorateEvents(events, state.Registrations, actor.ID), nil
}

// Get returns one event. Events hidden from the role are reported as missing.
func (s *EventService) Get(ctx context.Context, actorID, eventID int64) (*models.EventView, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	ev, ok := state.FindEvent(eventID)
	if !ok || !domain.VisibleTo(actor.Role, ev) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	view := domain.DecorateEvents([]models.Event{ev}, state.Registrations, actor.ID)[0]
	return &view, nil
}

// Publish submits the coordinator's draft for approval.
func (s *EventService) Publish(ctx context.Context, actorID int64, draft models.EventDraft) (*models.Event, error) {
	if err := s.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "please provide at least a title and a date")
	}
	var created models.Event
	_, err := updateAs(ctx, s.store, actorID, func(state models.AppState, actor models.User) (models.AppState, error) {
		next, ev, err := domain.Publish(state, actor, draft, s.ids)
		created = ev
		return next, err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.EventPublished()
	s.logger.Info("event published", zap.Int64("event_id", created.ID), zap.String("title", created.Title), zap.Stringer("date", created.Date))
	return &created, nil
}

// SetStatus approves or rejects a pending event.
func (s *EventService) SetStatus(ctx context.Context, actorID, eventID int64, req dto.EventStatusRequest) (bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "status must be approved or rejected")
	}
	status := models.EventStatus(req.Status)
	var changed bool
	_, err := updateAs(ctx, s.store, actorID, func(state models.AppState, actor models.User) (models.AppState, error) {
		next, ok, err := domain.SetStatus(state, actor, eventID, status)
		changed = ok
		return next, err
	})
	if err != nil {
		return false, err
	}
	if changed {
		s.metrics.EventDecided(status)
		s.logger.Info("event decided", zap.Int64("event_id", eventID), zap.String("status", string(status)))
	}
	return changed, nil
}

// Delete removes the event and its registrations once confirmed.
func (s *EventService) Delete(ctx context.Context, actorID, eventID int64, confirmed bool) (*dto.DeleteResult, error) {
	var outcome domain.DeleteOutcome
	_, err := updateAs(ctx, s.store, actorID, func(state models.AppState, actor models.User) (models.AppState, error) {
		next, out, err := domain.DeleteEvent(state, actor, eventID, confirmed)
		outcome = out
		return next, err
	})
	if err != nil {
		return nil, err
	}
	if outcome.Deleted {
		s.metrics.EventDeleted()
		s.logger.Info("event deleted", zap.Int64("event_id", eventID), zap.Int("removed_registrations", outcome.RemovedRegistrations))
	}
	return &dto.DeleteResult{
		Deleted:              outcome.Deleted,
		EventID:              eventID,
		RemovedRegistrations: outcome.RemovedRegistrations,
		ConfirmationRequired: !confirmed,
	}, nil
}

// Draft returns the coordinator's unsaved form.
func (s *EventService) Draft(ctx context.Context, actorID int64) (models.EventDraft, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return models.EventDraft{}, err
	}
	if err := domain.Require(actor, domain.CapPublishEvent); err != nil {
		return models.EventDraft{}, err
	}
	return state.Draft, nil
}

// SaveDraft keeps the coordinator's form between requests. Drafts are not validated.
func (s *EventService) SaveDraft(ctx context.Context, actorID int64, draft models.EventDraft) (models.EventDraft, error) {
	next, err := updateAs(ctx, s.store, actorID, func(state models.AppState, actor models.User) (models.AppState, error) {
		return domain.SaveDraft(state, actor, draft)
	})
	if err != nil {
		return models.EventDraft{}, err
	}
	return next.Draft, nil
}

// Roster lists the participants of an event.
func (s *EventService) Roster(ctx context.Context, actorID, eventID int64) (*dto.RosterResponse, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	ev, entries, err := domain.Roster(state, actor, eventID)
	if err != nil {
		return nil, err
	}
	return &dto.RosterResponse{Event: ev, Entries: entries}, nil
}

// RosterFile renders the roster as a CSV or PDF download.
func (s *EventService) RosterFile(ctx context.Context, actorID, eventID int64, format string) (*dto.RosterFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != RosterFormatCSV && format != RosterFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be json, csv or pdf")
	}
	roster, err := s.Roster(ctx, actorID, eventID)
	if err != nil {
		return nil, err
	}

	table := export.Table{Title: roster.Event.Title, Columns: rosterColumns}
	for _, entry := range roster.Entries {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(entry.RegistrationID, 10),
			strconv.FormatInt(entry.UserID, 10),
			entry.Name,
			entry.Email,
		})
	}

	file := &dto.RosterFile{Filename: fmt.Sprintf("event-%d-roster.%s", eventID, format)}
	switch format {
	case RosterFormatCSV:
		file.ContentType = "text/csv"
		file.Body, err = s.csv.Render(table)
	default:
		file.ContentType = "application/pdf"
		subtitle := fmt.Sprintf("%s, %d registered", roster.Event.Date, len(roster.Entries))
		file.Body, err = s.pdf.Render(table, subtitle)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}
	return file, nil
}

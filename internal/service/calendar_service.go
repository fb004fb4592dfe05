package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
	"github.com/noah-isme/college-events-api/pkg/export"
)

const feedProductID = "-//college-events-api//calendar//EN"

type icsRenderer interface {
	Render(name string, entries []export.CalendarEntry) []byte
}

// CalendarService drives the month widget and the iCalendar feed.
type CalendarService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger
	ics       icsRenderer
	now       func() time.Time
}

// NewCalendarService constructs the service.
func NewCalendarService(store stateStore, validate *validator.Validate, logger *zap.Logger, ics icsRenderer) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ics == nil {
		ics = export.NewICSExporter(feedProductID)
	}
	return &CalendarService{store: store, validator: validate, logger: logger, ics: ics, now: time.Now}
}

// WithClock overrides the clock used to mark today.
func (s *CalendarService) WithClock(now func() time.Time) *CalendarService {
	s.now = now
	return s
}

// Month renders the grid at the session cursor, or at month/year when both are given.
func (s *CalendarService) Month(ctx context.Context, actorID int64, month, year *int) (*dto.CalendarMonth, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	m, y := state.Cursor.Month, state.Cursor.Year
	if month != nil || year != nil {
		if month == nil || year == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "month and year must be given together")
		}
		if *month < 0 || *month > 11 || *year < 1 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "month must be 0-11 and year positive")
		}
		m, y = *month, *year
	}
	return monthView(domain.BuildMonth(m, y, state.Events, actor.Role, state.SelectedDate, s.now())), nil
}

// Navigate moves the cursor by whole months and returns the new grid.
func (s *CalendarService) Navigate(ctx context.Context, actorID int64, req dto.CalendarNavigateRequest) (*dto.CalendarMonth, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "offset must be a non-zero number of months")
	}
	return s.transition(ctx, actorID, func(state models.AppState) models.AppState {
		return domain.NavigateCalendar(state, req.Offset)
	})
}

// Select toggles the selected day. Selecting a day also moves the cursor to its month.
func (s *CalendarService) Select(ctx context.Context, actorID int64, req dto.CalendarSelectRequest) (*dto.CalendarMonth, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date is required")
	}
	date, err := models.ParseEventDate(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	return s.transition(ctx, actorID, func(state models.AppState) models.AppState {
		next := domain.SelectDate(state, date)
		next.Cursor = models.CalendarCursor{Month: int(date.Month) - 1, Year: date.Year}
		return next
	})
}

// Clear drops the selected day.
func (s *CalendarService) Clear(ctx context.Context, actorID int64) (*dto.CalendarMonth, error) {
	return s.transition(ctx, actorID, domain.ClearSelectedDate)
}

// Feed exports every event the current role can see as an iCalendar document.
func (s *CalendarService) Feed(ctx context.Context, actorID int64) ([]byte, error) {
	state, actor, err := snapshotFor(ctx, s.store, actorID)
	if err != nil {
		return nil, err
	}
	events := domain.VisibleEvents(state.Events, domain.EventQuery{Role: actor.Role, Status: models.StatusAll})
	entries := make([]export.CalendarEntry, 0, len(events))
	for _, ev := range events {
		summary := ev.Title
		if ev.Status != models.EventStatusApproved {
			summary = fmt.Sprintf("%s (%s)", ev.Title, ev.Status)
		}
		entries = append(entries, export.CalendarEntry{
			UID:         fmt.Sprintf("event-%d@college-events-api", ev.ID),
			Day:         ev.Date.Time(),
			Summary:     summary,
			Description: strings.TrimSpace(ev.Description),
			URL:         ev.ImageURL,
		})
	}
	s.logger.Debug("calendar feed rendered", zap.Int("events", len(entries)), zap.String("role", string(actor.Role)))
	return s.ics.Render("Campus events", entries), nil
}

func (s *CalendarService) transition(ctx context.Context, actorID int64, fn func(models.AppState) models.AppState) (*dto.CalendarMonth, error) {
	next, err := updateAs(ctx, s.store, actorID, func(state models.AppState, _ models.User) (models.AppState, error) {
		return fn(state), nil
	})
	if err != nil {
		return nil, err
	}
	actor, _ := next.CurrentUser()
	return monthView(domain.BuildMonth(next.Cursor.Month, next.Cursor.Year, next.Events, actor.Role, next.SelectedDate, s.now())), nil
}

func monthView(grid domain.MonthGrid) *dto.CalendarMonth {
	view := &dto.CalendarMonth{
		Month:        grid.Month,
		Year:         grid.Year,
		MonthName:    time.Month(grid.Month + 1).String(),
		LeadingBlank: grid.LeadingBlank,
		Days:         make([]dto.CalendarDay, 0, len(grid.Days)),
	}
	if grid.Selected != nil {
		selected := grid.Selected.String()
		view.SelectedDate = &selected
	}
	for _, cell := range grid.Days {
		view.Days = append(view.Days, dto.CalendarDay{
			Day:       cell.Date.Day,
			Date:      cell.Date.String(),
			HasEvents: cell.HasEvents,
			Selected:  cell.Selected,
			Today:     cell.Today,
		})
	}
	return view
}

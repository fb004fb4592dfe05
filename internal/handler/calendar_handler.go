package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-events-api/internal/dto"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
	"github.com/noah-isme/college-events-api/pkg/response"
)

type calendarService interface {
	Month(ctx context.Context, actorID int64, month, year *int) (*dto.CalendarMonth, error)
	Navigate(ctx context.Context, actorID int64, req dto.CalendarNavigateRequest) (*dto.CalendarMonth, error)
	Select(ctx context.Context, actorID int64, req dto.CalendarSelectRequest) (*dto.CalendarMonth, error)
	Clear(ctx context.Context, actorID int64) (*dto.CalendarMonth, error)
	Feed(ctx context.Context, actorID int64) ([]byte, error)
}

// CalendarHandler serves the month widget and the iCalendar feed.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// Month godoc
// @Summary Month grid
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param month query int false "Zero-based month"
// @Param year query int false "Year"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	month, err := optionalInt(c, "month")
	if err != nil {
		response.Error(c, err)
		return
	}
	year, err := optionalInt(c, "year")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.Month(c.Request.Context(), actorID, month, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Navigate godoc
// @Summary Move the calendar by whole months
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CalendarNavigateRequest true "Offset"
// @Success 200 {object} response.Envelope
// @Router /calendar/navigate [post]
func (h *CalendarHandler) Navigate(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CalendarNavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	view, err := h.service.Navigate(c.Request.Context(), actorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Select godoc
// @Summary Toggle the selected day
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CalendarSelectRequest true "Day"
// @Success 200 {object} response.Envelope
// @Router /calendar/select [post]
func (h *CalendarHandler) Select(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CalendarSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	view, err := h.service.Select(c.Request.Context(), actorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Clear godoc
// @Summary Clear the selected day
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /calendar/select [delete]
func (h *CalendarHandler) Clear(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.Clear(c.Request.Context(), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Feed godoc
// @Summary iCalendar export of the visible events
// @Tags Calendar
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string "ICS document"
// @Router /calendar/feed.ics [get]
func (h *CalendarHandler) Feed(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	body, err := h.service.Feed(c.Request.Context(), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "campus-events.ics", "text/calendar; charset=utf-8", body)
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, key+" must be an integer")
	}
	return &v, nil
}

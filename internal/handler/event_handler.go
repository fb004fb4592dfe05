package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/middleware"
	"github.com/noah-isme/college-events-api/internal/models"
	"github.com/noah-isme/college-events-api/internal/service"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
	"github.com/noah-isme/college-events-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, actorID int64, req dto.EventListRequest) ([]models.EventView, error)
	Get(ctx context.Context, actorID, eventID int64) (*models.EventView, error)
	Publish(ctx context.Context, actorID int64, draft models.EventDraft) (*models.Event, error)
	SetStatus(ctx context.Context, actorID, eventID int64, req dto.EventStatusRequest) (bool, error)
	Delete(ctx context.Context, actorID, eventID int64, confirmed bool) (*dto.DeleteResult, error)
	Draft(ctx context.Context, actorID int64) (models.EventDraft, error)
	SaveDraft(ctx context.Context, actorID int64, draft models.EventDraft) (models.EventDraft, error)
	Roster(ctx context.Context, actorID, eventID int64) (*dto.RosterResponse, error)
	RosterFile(ctx context.Context, actorID, eventID int64, format string) (*dto.RosterFile, error)
}

// EventHandler exposes the event list and approval lifecycle.
type EventHandler struct {
	service eventService
}

// NewEventHandler constructs the handler.
func NewEventHandler(service eventService) *EventHandler {
	return &EventHandler{service: service}
}

// List godoc
// @Summary List events visible to the current role
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive title search"
// @Param status query string false "all, pending, approved or rejected"
// @Param date query string false "Exact day (YYYY-M-D). Defaults to the selected calendar day"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	events, err := h.service.List(c.Request.Context(), actorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "count", len(events))
	response.JSON(c, http.StatusOK, events, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Fetch one event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	actorID, eventID, ok := h.target(c)
	if !ok {
		return
	}
	event, err := h.service.Get(c.Request.Context(), actorID, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// Publish godoc
// @Summary Submit an event for approval
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.EventDraft true "Event form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Publish(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft models.EventDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	event, err := h.service.Publish(c.Request.Context(), actorID, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// SetStatus godoc
// @Summary Approve or reject a pending event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param payload body dto.EventStatusRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events/{id}/status [patch]
func (h *EventHandler) SetStatus(c *gin.Context) {
	actorID, eventID, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.EventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	changed, err := h.service.SetStatus(c.Request.Context(), actorID, eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ChangeResult{Changed: changed})
}

// Delete godoc
// @Summary Delete an event and its registrations
// @Description Nothing is removed unless confirm=true.
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param confirm query bool false "Confirm the delete"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	actorID, eventID, ok := h.target(c)
	if !ok {
		return
	}
	confirmed := false
	if raw := c.Query("confirm"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "confirm must be true or false"))
			return
		}
		confirmed = parsed
	}
	result, err := h.service.Delete(c.Request.Context(), actorID, eventID, confirmed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Roster godoc
// @Summary Event participants
// @Tags Events
// @Produce json,text/csv,application/pdf
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param format query string false "json (default), csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/roster [get]
func (h *EventHandler) Roster(c *gin.Context) {
	actorID, eventID, ok := h.target(c)
	if !ok {
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", service.RosterFormatJSON)))
	if format == service.RosterFormatJSON {
		roster, err := h.service.Roster(c.Request.Context(), actorID, eventID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, roster)
		return
	}
	file, err := h.service.RosterFile(c.Request.Context(), actorID, eventID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Draft godoc
// @Summary Coordinator's unsaved event form
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /session/draft [get]
func (h *EventHandler) Draft(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	draft, err := h.service.Draft(c.Request.Context(), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// SaveDraft godoc
// @Summary Keep the coordinator's event form
// @Tags Session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.EventDraft true "Partial form"
// @Success 200 {object} response.Envelope
// @Router /session/draft [put]
func (h *EventHandler) SaveDraft(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft models.EventDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	saved, err := h.service.SaveDraft(c.Request.Context(), actorID, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved)
}

func (h *EventHandler) target(c *gin.Context) (int64, int64, bool) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	eventID, err := eventIDParam(c)
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	return actorID, eventID, true
}

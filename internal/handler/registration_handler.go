package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/pkg/response"
)

type registrationService interface {
	Register(ctx context.Context, actorID, eventID int64) (bool, error)
	Withdraw(ctx context.Context, actorID, eventID int64) (bool, error)
	Mine(ctx context.Context, actorID int64) ([]dto.RegistrationView, error)
}

// RegistrationHandler lets students join and leave events.
type RegistrationHandler struct {
	service registrationService
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(service registrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Register godoc
// @Summary Register the current student for an event
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id}/registration [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	h.change(c, h.service.Register)
}

// Withdraw godoc
// @Summary Cancel the current student's registration
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/registration [delete]
func (h *RegistrationHandler) Withdraw(c *gin.Context) {
	h.change(c, h.service.Withdraw)
}

// Mine godoc
// @Summary Registrations of the current user
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /registrations/me [get]
func (h *RegistrationHandler) Mine(c *gin.Context) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	regs, err := h.service.Mine(c.Request.Context(), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, regs)
}

func (h *RegistrationHandler) change(c *gin.Context, fn func(ctx context.Context, actorID, eventID int64) (bool, error)) {
	actorID, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	eventID, err := eventIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	changed, err := fn(c.Request.Context(), actorID, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ChangeResult{Changed: changed})
}

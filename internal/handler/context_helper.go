package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-events-api/internal/middleware"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

// actorFromContext returns the user id the session token was issued for.
func actorFromContext(c *gin.Context) (int64, error) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		return 0, appErrors.ErrUnauthorized
	}
	return claims.UserID, nil
}

func eventIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "event id must be a positive integer")
	}
	return id, nil
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}

package domain

import (
	"fmt"

	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

// Capability names one privileged action.
type Capability string

const (
	CapPublishEvent  Capability = "publish events"
	CapDecideEvent   Capability = "approve or reject events"
	CapDeleteEvent   Capability = "delete events"
	CapRegister      Capability = "register for events"
	CapViewRoster    Capability = "view event rosters"
	CapViewDashboard Capability = "view the dashboard"
)

var roleCapabilities = map[models.UserRole]map[Capability]struct{}{
	models.RoleAdmin: {
		CapDecideEvent:   {},
		CapDeleteEvent:   {},
		CapViewRoster:    {},
		CapViewDashboard: {},
	},
	models.RoleCoordinator: {
		CapPublishEvent:  {},
		CapViewRoster:    {},
		CapViewDashboard: {},
	},
	models.RoleStudent: {
		CapRegister: {},
	},
}

// Can reports whether the role holds the capability.
func Can(role models.UserRole, c Capability) bool {
	_, ok := roleCapabilities[role][c]
	return ok
}

// Require returns FORBIDDEN unless the actor's role holds the capability.
func Require(actor models.User, c Capability) error {
	if Can(actor.Role, c) {
		return nil
	}
	role := actor.Role
	if role == "" {
		role = "anonymous"
	}
	return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("role %s may not %s", role, c))
}

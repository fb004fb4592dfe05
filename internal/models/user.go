package models

import "strings"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleCoordinator UserRole = "coordinator"
	RoleStudent     UserRole = "student"
)

// Roles lists every role in the order the role switcher presents them.
var Roles = []UserRole{RoleAdmin, RoleCoordinator, RoleStudent}

// ParseRole normalises a role name. The boolean is false for unknown roles.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(strings.ToLower(strings.TrimSpace(raw)))
	for _, r := range Roles {
		if r == role {
			return role, true
		}
	}
	return "", false
}

// User is a campus member. Users only come from seed data.
type User struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AvatarSeed   string   `json:"avatar_seed"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	AvatarSeed string `json:"avatar_seed"`
}

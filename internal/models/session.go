package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the capability token issued on role switch.
type SessionClaims struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// SessionInfo is returned when the session changes hands.
type SessionInfo struct {
	User      User   `json:"user"`
	AvatarURL string `json:"avatar_url"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

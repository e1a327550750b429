package models

import "github.com/golang-jwt/jwt/v5"

// Role represents the closed set of authorities carried by LAAMS tokens.
type Role string

const (
	RoleDirector Role = "ROLE_DIRECTOR"
	RoleManager  Role = "ROLE_MANAGER"
	// RoleUnknown is the sentinel for any authority string outside the
	// closed set. It never equals RoleDirector.
	RoleUnknown Role = "ROLE_UNKNOWN"
)

// RoleFromString maps a raw authority claim onto the closed role set.
func RoleFromString(raw string) Role {
	switch Role(raw) {
	case RoleDirector:
		return RoleDirector
	case RoleManager:
		return RoleManager
	default:
		return RoleUnknown
	}
}

// DirectorClaims is the typed caller principal decoded from an access token.
// It collapses (role, id, centerNo) into one value passed down to services.
type DirectorClaims struct {
	ID        string `json:"id"`
	Authority string `json:"authority"`
	CenterNo  int64  `json:"centerNo"`
	jwt.RegisteredClaims
}

// Role returns the caller's authority within the closed role set.
func (c *DirectorClaims) Role() Role {
	if c == nil {
		return RoleUnknown
	}
	return RoleFromString(c.Authority)
}

// IsDirector reports whether the caller holds the director authority.
func (c *DirectorClaims) IsDirector() bool {
	return c.Role() == RoleDirector
}

package domain

import (
	"strings"
	"time"
)

// UserRole is the authorization level carried in tokens.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// ParseUserRole accepts a role name in any letter case.
func ParseUserRole(value string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(value))) {
	case UserRoleUser:
		return UserRoleUser, true
	case UserRoleAdmin:
		return UserRoleAdmin, true
	default:
		return "", false
	}
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

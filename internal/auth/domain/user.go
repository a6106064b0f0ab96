package domain

import (
	"errors"
	"time"
)

// User is the root entity for the authentication domain. Issued tokens and
// OTP codes are owned by, and lifecycle-bound to, their user. The email is
// the unique identifier the token subject carries.
type User struct {
	ID              string
	Email           string
	PasswordHash    string // argon2id PHC encoded
	FullName        string
	PhoneNumber     string
	Location        string
	Role            Role
	EmailVerified   bool
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Role is the closed set of authorities a user can hold. The wire/storage
// form keeps the ROLE_ prefix of the original schema.
type Role string

const (
	RoleGuest Role = "ROLE_GUEST"
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ErrUnknownRole reports a role string outside the closed enumeration.
var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a stored role string at the domain boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGuest, RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }

package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the session token flows. These provide
// sensible security defaults but can be overridden per-service via config.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived so a device can stay signed in between sessions.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the session-token claims. The subject is the user's email,
// which is the unique identifier the rest of the system keys on.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds minimally-correct claims for a subject and lifetime.
func NewClaims(subject string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateExpiry ensures the token hasn't expired (exp).
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// Package jwtx implements the session token codec: compact HS256-signed
// tokens carrying a subject and expiry, produced and verified with a single
// symmetric secret. It is stateless aside from the configured secret and
// TTLs; revocation lives in the token ledger, not here.
package jwtx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed      = errors.New("jwtx: malformed token")
	ErrInvalidSig     = errors.New("jwtx: invalid signature")
	ErrExpired        = errors.New("jwtx: token expired")
	ErrUnsupportedAlg = errors.New("jwtx: unsupported signing method")
	ErrInvalidClaim   = errors.New("jwtx: invalid claims")
)

// Verifier checks a compact token and returns its claims. Satisfied by
// *Codec; middleware depends on this interface so tests can stub it.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Codec signs and verifies session tokens with a shared HMAC-SHA256 secret.
// Access and refresh tokens share the same encoding and signing mechanism
// and differ only by TTL.
type Codec struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	// Now is the clock used for issuance and expiry checks. Overridable in
	// tests to simulate elapsed time.
	Now func() time.Time
}

// NewCodec builds a codec from a base64-encoded symmetric secret. TTLs of
// zero fall back to the package defaults.
func NewCodec(secretB64 string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode secret: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &Codec{
		key:        key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		Now:        time.Now,
	}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL reports the configured refresh-token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// SignAccess issues a short-lived access token for the subject.
func (c *Codec) SignAccess(subject string) (string, error) {
	return c.sign(subject, c.accessTTL)
}

// SignRefresh issues a longer-lived refresh token for the subject.
func (c *Codec) SignRefresh(subject string) (string, error) {
	return c.sign(subject, c.refreshTTL)
}

func (c *Codec) sign(subject string, ttl time.Duration) (string, error) {
	claims := NewClaims(subject, ttl, c.Now().UTC())
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify decodes the token and validates its signature and expiry. The
// returned error is one of the package sentinels so callers can surface a
// distinct reason per failure kind.
func (c *Codec) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnsupportedAlg
		}
		return c.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.Now().UTC() }))
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}
	return claims, nil
}

// Subject extracts the subject after a successful Verify.
func (c *Codec) Subject(token string) (string, error) {
	claims, err := c.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnsupportedAlg):
		return ErrUnsupportedAlg
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}
}

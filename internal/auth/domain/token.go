package domain

import "time"

// TokenPair is what a successful authentication or refresh returns: a
// short-lived signed access token and a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenTypeBearer is the only token type the ledger records.
const TokenTypeBearer = "bearer"

// IssuedToken models a token-ledger row. One is created on every successful
// authentication or refresh; rows are flagged expired+revoked in one batch
// when a new session supersedes them, and never hard-deleted by the auth
// flow itself.
type IssuedToken struct {
	ID        string
	UserID    string
	Token     string
	TokenType string
	Expired   bool
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid reports whether the ledger still considers this token live.
func (t IssuedToken) Valid() bool { return !t.Expired && !t.Revoked }

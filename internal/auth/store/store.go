package store

import (
	"context"
	"errors"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Users() Users
	IssuedTokens() IssuedTokens
	OtpCodes() OtpCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn returns
	// an error, committed otherwise. Multi-step operations that must be
	// atomic (revoke-then-issue, OTP validate-and-provision) go through
	// here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by its ULID.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the primary lookup: email is the token subject.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates the display name, phone and location fields
	// and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, fullName, phoneNumber, location string) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// MarkEmailVerified sets email_verified and email_verified_at.
	MarkEmailVerified(ctx context.Context, userID string, at time.Time) error
}

type IssuedTokens interface {
	// CreateIssuedToken persists a new ledger row marked not-expired,
	// not-revoked.
	CreateIssuedToken(ctx context.Context, t domain.IssuedToken) error

	// ListValidUserTokens returns every currently valid row for a user.
	ListValidUserTokens(ctx context.Context, userID string) ([]domain.IssuedToken, error)

	// RevokeAllUserTokens flags every currently valid row for the user as
	// both expired and revoked, in one batch.
	RevokeAllUserTokens(ctx context.Context, userID string) error

	// DeleteDeadIssuedTokens purges revoked/expired rows older than the
	// cutoff. Housekeeping only; the auth flow never hard-deletes.
	DeleteDeadIssuedTokens(ctx context.Context, before time.Time) error
}

type OtpCodes interface {
	// GetOtpByEmail returns the single live code for an email.
	GetOtpByEmail(ctx context.Context, email string) (domain.OtpCode, error)

	// UpsertOtp creates the per-email row or overwrites its code and
	// timestamps in place. Last write wins by design.
	UpsertOtp(ctx context.Context, c domain.OtpCode) error

	// DeleteExpiredOtps removes codes past their expiry (housekeeping).
	DeleteExpiredOtps(ctx context.Context, now time.Time) error
}

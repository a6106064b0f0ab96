package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kroyahq/kroya/internal/auth/domain"
	"github.com/kroyahq/kroya/internal/auth/store"
	"github.com/kroyahq/kroya/pkg/cryptox"
	"github.com/kroyahq/kroya/pkg/httpx"
	"github.com/kroyahq/kroya/pkg/idx"
	"github.com/kroyahq/kroya/pkg/jwtx"
	"github.com/kroyahq/kroya/pkg/slogx"
)

var (
	ErrUserNotFound      = errors.New("user_not_found")
	ErrIncorrectPassword = errors.New("incorrect_password")
	ErrPasswordMismatch  = errors.New("password_mismatch")
	ErrEmailNotVerified  = errors.New("email_not_verified")

	// Refresh failures; the HTTP layer maps each to its exact reason string.
	ErrMissingAuthHeader = errors.New("missing_auth_header")
	ErrInvalidTokenUser  = errors.New("invalid_token_or_user")
	ErrNoUserInfo        = errors.New("no_user_information")
)

// AuthService owns session issuance: login, registration, password reset,
// refresh and logout. Every successful authentication revokes the user's
// prior sessions and records the new one in the token ledger, so at most
// one session chain is live per user.
type AuthService struct {
	Store store.Store
	Codec *jwtx.Codec
}

// CheckEmailExists confirms an account exists for the email. Absence is
// ErrUserNotFound, the same as every other account lookup.
func (s *AuthService) CheckEmailExists(ctx context.Context, email string) error {
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Login authenticates with email and password and starts a fresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("email", email))
		return domain.TokenPair{}, ErrIncorrectPassword
	}

	return s.issueSession(ctx, user)
}

// CreatePassword finishes registration for a user provisioned during OTP
// validation: it sets the real password and starts the first session.
func (s *AuthService) CreatePassword(ctx context.Context, email, newPassword, confirmPassword string) (domain.TokenPair, error) {
	if newPassword != confirmPassword {
		return domain.TokenPair{}, ErrPasswordMismatch
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}
	if !user.EmailVerified {
		return domain.TokenPair{}, ErrEmailNotVerified
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return domain.TokenPair{}, err
	}

	return s.issueSession(ctx, user)
}

// SaveProfile updates the caller-supplied display fields for the user.
func (s *AuthService) SaveProfile(ctx context.Context, email, fullName, phoneNumber, location string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.Store.Users().UpdateProfile(ctx, user.ID, fullName, phoneNumber, location)
}

// ResetPassword replaces the password after OTP verification and revokes
// every live session so stolen tokens die with the old password.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}
		return tx.IssuedTokens().RevokeAllUserTokens(ctx, user.ID)
	})
}

// Refresh exchanges a refresh token, carried as a bearer Authorization
// header, for a brand new session pair. The old sessions are revoked
// exactly as on login.
func (s *AuthService) Refresh(ctx context.Context, authorization string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if authorization == "" || !strings.HasPrefix(authorization, "Bearer ") {
		return domain.TokenPair{}, ErrMissingAuthHeader
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer"))

	claims, err := s.Codec.Verify(raw)
	if err != nil {
		if errors.Is(err, jwtx.ErrInvalidClaim) {
			return domain.TokenPair{}, ErrNoUserInfo
		}
		l.Info("refresh token rejected", slog.Any("err", err))
		return domain.TokenPair{}, ErrInvalidTokenUser
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidTokenUser
	}

	// Token subject must still match the stored account and be unexpired.
	// Verify already checked expiry; re-check subject equality explicitly.
	if user.Email != claims.Subject {
		return domain.TokenPair{}, ErrInvalidTokenUser
	}

	return s.issueSession(ctx, user)
}

// Logout revokes every live ledger row for the caller, ending all sessions.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.Store.IssuedTokens().RevokeAllUserTokens(ctx, userID)
}

// ResolveIdentity loads the account behind a verified token subject. Used
// by the access gate to re-check the token against a fresh user row before
// admitting the request.
func (s *AuthService) ResolveIdentity(ctx context.Context, subject string) (httpx.Identity, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, ErrUserNotFound
		}
		return httpx.Identity{}, err
	}
	return httpx.Identity{UserID: user.ID, Email: user.Email, Role: user.Role.String()}, nil
}

// GetUser returns the full user row for a profile read.
func (s *AuthService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// issueSession signs a fresh access+refresh pair and, in one transaction,
// revokes every prior ledger row before recording the new access token.
func (s *AuthService) issueSession(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	access, err := s.Codec.SignAccess(user.Email)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Codec.SignRefresh(user.Email)
	if err != nil {
		return domain.TokenPair{}, err
	}

	now := s.Codec.Now().UTC()
	row := domain.IssuedToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		Token:     access,
		TokenType: domain.TokenTypeBearer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.IssuedTokens().RevokeAllUserTokens(ctx, user.ID); err != nil {
			return err
		}
		return tx.IssuedTokens().CreateIssuedToken(ctx, row)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

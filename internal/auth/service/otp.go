package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
	"github.com/kroyahq/kroya/internal/auth/store"
	"github.com/kroyahq/kroya/pkg/cryptox"
	"github.com/kroyahq/kroya/pkg/idx"
	"github.com/kroyahq/kroya/pkg/mailx"
	"github.com/kroyahq/kroya/pkg/slogx"
)

// DefaultOtpTTL is how long a one-time code stays valid after generation.
const DefaultOtpTTL = 5 * time.Minute

var (
	ErrOtpNotFound = errors.New("otp_not_found")
	ErrOtpExpired  = errors.New("otp_expired")
	ErrOtpMismatch = errors.New("otp_mismatch")
)

// OtpService manages email verification: generating one-time codes,
// delivering them, and validating submissions. A successful validation
// provisions the user row (with a throwaway placeholder password) so the
// follow-up registration step only has to set the real password.
type OtpService struct {
	Store  store.Store
	Mailer mailx.Sender
	TTL    time.Duration

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func (s *OtpService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OtpService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultOtpTTL
}

// Generate mints a fresh 6-digit code for the email, overwriting any prior
// code, and emails it to the address. Generation succeeds only if the email
// could actually be delivered.
func (s *OtpService) Generate(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)

	code, err := cryptox.GenerateNumericCode()
	if err != nil {
		return err
	}

	now := s.now()
	otp := domain.OtpCode{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}

	// Link the code to an existing account when one exists; for brand new
	// signups the user row appears later, during validation.
	if user, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		otp.UserID = user.ID
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if err := s.Store.OtpCodes().UpsertOtp(ctx, otp); err != nil {
		return err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(s.ttl().Minutes()))
	if err := s.Mailer.Send(ctx, email, "Your verification code", body); err != nil {
		l.Error("otp email delivery failed", slog.String("email", email), slog.Any("err", err))
		return err
	}

	l.Info("otp generated", slog.String("email", email))
	return nil
}

// Validate checks a submitted code against the live one for the email.
// On success the account is provisioned (or marked verified if it already
// exists) inside a single transaction.
func (s *OtpService) Validate(ctx context.Context, email, code string) error {
	otp, err := s.Store.OtpCodes().GetOtpByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOtpNotFound
		}
		return err
	}

	now := s.now()
	if otp.ExpiredAt(now) {
		return ErrOtpExpired
	}
	if !cryptox.EqualCodes(otp.Code, code) {
		return ErrOtpMismatch
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			return s.provisionUser(ctx, tx, email, now)
		}
		if err != nil {
			return err
		}
		if user.EmailVerified {
			return nil
		}
		return tx.Users().MarkEmailVerified(ctx, user.ID, now)
	})
}

// provisionUser creates the verified account shell a successful OTP
// validation leaves behind. The placeholder password is random and hashed,
// never disclosed; registration replaces it with the real one.
func (s *OtpService) provisionUser(ctx context.Context, tx store.Tx, email string, now time.Time) error {
	placeholder, err := cryptox.GeneratePassword()
	if err != nil {
		return err
	}
	hash, err := cryptox.HashPassword(placeholder)
	if err != nil {
		return err
	}

	verifiedAt := now
	return tx.Users().CreateUser(ctx, domain.User{
		ID:              idx.New().String(),
		Email:           email,
		PasswordHash:    hash,
		Role:            domain.RoleUser,
		EmailVerified:   true,
		EmailVerifiedAt: &verifiedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

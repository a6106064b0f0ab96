package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
)

type otpCodesRepo struct {
	q querier
}

func (r *otpCodesRepo) GetOtpByEmail(ctx context.Context, email string) (domain.OtpCode, error) {
	var (
		c      domain.OtpCode
		userID sql.NullString
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT email, code, user_id, created_at, expires_at
		FROM otp_codes
		WHERE email = ?;
	`, email).Scan(&c.Email, &c.Code, &userID, &c.CreatedAt, &c.ExpiresAt)
	if err != nil {
		return domain.OtpCode{}, mapNotFound(err)
	}
	c.UserID = mapNullString(userID)
	return c, nil
}

// UpsertOtp overwrites the per-email row in place: last write wins, so at
// most one live code exists for an email.
func (r *otpCodesRepo) UpsertOtp(ctx context.Context, c domain.OtpCode) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO otp_codes (email, code, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			code = excluded.code,
			user_id = excluded.user_id,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at;
	`,
		c.Email,
		c.Code,
		mapStringNull(c.UserID),
		c.CreatedAt,
		c.ExpiresAt,
	)
	return err
}

func (r *otpCodesRepo) DeleteExpiredOtps(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM otp_codes
		WHERE expires_at < ?;
	`, now)
	return err
}

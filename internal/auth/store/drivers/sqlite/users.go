package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
	"github.com/kroyahq/kroya/internal/auth/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, email, password_hash, full_name, phone_number, location,
	role, email_verified, email_verified_at, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = ?;
	`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = ?;
	`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, full_name, phone_number, location,
			role, email_verified, email_verified_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.PhoneNumber,
		u.Location,
		u.Role.String(),
		u.EmailVerified,
		mapOptionalTime(u.EmailVerifiedAt),
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, fullName, phoneNumber, location string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET full_name = ?, phone_number = ?, location = ?, updated_at = ?
		WHERE id = ?;
	`, fullName, phoneNumber, location, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, updated_at = ?
		WHERE id = ?;
	`, newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *usersRepo) MarkEmailVerified(ctx context.Context, userID string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET email_verified = 1, email_verified_at = ?, updated_at = ?
		WHERE id = ?;
	`, at, at, userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

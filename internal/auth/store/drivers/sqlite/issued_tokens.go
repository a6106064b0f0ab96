package sqlite

import (
	"context"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
)

type issuedTokensRepo struct {
	q querier
}

func (r *issuedTokensRepo) CreateIssuedToken(ctx context.Context, t domain.IssuedToken) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO issued_tokens (
			id, user_id, token, token_type, expired, revoked, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`,
		t.ID,
		t.UserID,
		t.Token,
		t.TokenType,
		t.Expired,
		t.Revoked,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *issuedTokensRepo) ListValidUserTokens(ctx context.Context, userID string) ([]domain.IssuedToken, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, user_id, token, token_type, expired, revoked, created_at, updated_at
		FROM issued_tokens
		WHERE user_id = ? AND expired = 0 AND revoked = 0
		ORDER BY created_at;
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.IssuedToken
	for rows.Next() {
		var t domain.IssuedToken
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Token,
			&t.TokenType,
			&t.Expired,
			&t.Revoked,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *issuedTokensRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE issued_tokens
		SET expired = 1, revoked = 1, updated_at = ?
		WHERE user_id = ? AND expired = 0 AND revoked = 0;
	`, time.Now().UTC(), userID)
	return err
}

func (r *issuedTokensRepo) DeleteDeadIssuedTokens(ctx context.Context, before time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM issued_tokens
		WHERE (expired = 1 OR revoked = 1) AND updated_at < ?;
	`, before)
	return err
}

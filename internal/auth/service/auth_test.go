package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
	"github.com/kroyahq/kroya/internal/auth/store"
	"github.com/kroyahq/kroya/internal/auth/store/drivers/sqlite"
	"github.com/kroyahq/kroya/pkg/cryptox"
	"github.com/kroyahq/kroya/pkg/idx"
	"github.com/kroyahq/kroya/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "kroya-service-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	c, err := jwtx.NewCodec(secret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	return c
}

func seedVerifiedUser(t *testing.T, st store.Store, email, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID:              idx.New().String(),
		Email:           email,
		PasswordHash:    hash,
		FullName:        "Seed User",
		Role:            domain.RoleUser,
		EmailVerified:   true,
		EmailVerifiedAt: &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestCheckEmailExists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec(t)}
	seedVerifiedUser(t, st, "known@example.com", "secret-pw-1")

	require.NoError(t, svc.CheckEmailExists(ctx, "known@example.com"))

	err := svc.CheckEmailExists(ctx, "unknown@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &AuthService{Store: st, Codec: codec}
	user := seedVerifiedUser(t, st, "alice@example.com", "correct-horse-9")

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "whatever")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("success issues a verifiable pair and records the session", func(t *testing.T) {
		pair, err := svc.Login(ctx, "alice@example.com", "correct-horse-9")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

		claims, err := codec.Verify(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", claims.Subject)

		live, err := st.IssuedTokens().ListValidUserTokens(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, live, 1)
		require.Equal(t, pair.AccessToken, live[0].Token)
	})

	t.Run("second login revokes the first session", func(t *testing.T) {
		first, err := svc.Login(ctx, "alice@example.com", "correct-horse-9")
		require.NoError(t, err)

		second, err := svc.Login(ctx, "alice@example.com", "correct-horse-9")
		require.NoError(t, err)

		live, err := st.IssuedTokens().ListValidUserTokens(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, live, 1)
		require.Equal(t, second.AccessToken, live[0].Token)
		require.NotEqual(t, first.AccessToken, live[0].Token)
	})
}

func TestCreatePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec(t)}

	t.Run("mismatched confirmation", func(t *testing.T) {
		_, err := svc.CreatePassword(ctx, "x@example.com", "new-password-1", "new-password-2")
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.CreatePassword(ctx, "x@example.com", "new-password-1", "new-password-1")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("sets the real password and logs in", func(t *testing.T) {
		seedVerifiedUser(t, st, "fresh@example.com", "placeholder-pw")

		pair, err := svc.CreatePassword(ctx, "fresh@example.com", "real-password-7", "real-password-7")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)

		// The placeholder no longer works; the new password does.
		_, err = svc.Login(ctx, "fresh@example.com", "placeholder-pw")
		require.ErrorIs(t, err, ErrIncorrectPassword)

		_, err = svc.Login(ctx, "fresh@example.com", "real-password-7")
		require.NoError(t, err)
	})
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec(t)}
	user := seedVerifiedUser(t, st, "bob@example.com", "old-password-1")

	t.Run("mismatched confirmation", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "bob@example.com", "a-password-123", "b-password-123")
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("replaces the password and kills live sessions", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "old-password-1")
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(ctx, "bob@example.com", "new-password-1", "new-password-1"))

		live, err := st.IssuedTokens().ListValidUserTokens(ctx, user.ID)
		require.NoError(t, err)
		require.Empty(t, live)

		_, err = svc.Login(ctx, "bob@example.com", "old-password-1")
		require.ErrorIs(t, err, ErrIncorrectPassword)
		_, err = svc.Login(ctx, "bob@example.com", "new-password-1")
		require.NoError(t, err)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &AuthService{Store: st, Codec: codec}
	user := seedVerifiedUser(t, st, "carol@example.com", "password-abc-1")

	t.Run("missing header", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "")
		require.ErrorIs(t, err, ErrMissingAuthHeader)
	})

	t.Run("non-bearer header", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "Basic dXNlcjpwYXNz")
		require.ErrorIs(t, err, ErrMissingAuthHeader)
	})

	t.Run("tampered token", func(t *testing.T) {
		refresh, err := codec.SignRefresh("carol@example.com")
		require.NoError(t, err)
		tampered := refresh[:len(refresh)-4] + "AAAA"

		_, err = svc.Refresh(ctx, "Bearer "+tampered)
		require.ErrorIs(t, err, ErrInvalidTokenUser)
	})

	t.Run("expired token", func(t *testing.T) {
		past := newTestCodec(t)
		past.Now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
		refresh, err := past.SignRefresh("carol@example.com")
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, "Bearer "+refresh)
		require.ErrorIs(t, err, ErrInvalidTokenUser)
	})

	t.Run("subject without a user row", func(t *testing.T) {
		refresh, err := codec.SignRefresh("ghost@example.com")
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, "Bearer "+refresh)
		require.ErrorIs(t, err, ErrInvalidTokenUser)
	})

	t.Run("valid refresh issues a brand new pair and supersedes old sessions", func(t *testing.T) {
		loginPair, err := svc.Login(ctx, "carol@example.com", "password-abc-1")
		require.NoError(t, err)

		pair, err := svc.Refresh(ctx, "Bearer "+loginPair.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.NotEqual(t, loginPair.AccessToken, pair.AccessToken)

		claims, err := codec.Verify(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "carol@example.com", claims.Subject)

		live, err := st.IssuedTokens().ListValidUserTokens(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, live, 1)
		require.Equal(t, pair.AccessToken, live[0].Token)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec(t)}
	user := seedVerifiedUser(t, st, "dave@example.com", "password-xyz-1")

	_, err := svc.Login(ctx, "dave@example.com", "password-xyz-1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	live, err := st.IssuedTokens().ListValidUserTokens(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, live)
}

func TestResolveIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &AuthService{Store: st, Codec: newTestCodec(t)}
	user := seedVerifiedUser(t, st, "erin@example.com", "password-123-a")

	id, err := svc.ResolveIdentity(ctx, "erin@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, id.UserID)
	require.Equal(t, "erin@example.com", id.Email)
	require.Equal(t, domain.RoleUser.String(), id.Role)

	_, err = svc.ResolveIdentity(ctx, "missing@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

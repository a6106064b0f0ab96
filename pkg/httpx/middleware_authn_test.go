package httpx_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kroyahq/kroya/pkg/httpx"
	"github.com/kroyahq/kroya/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	identity httpx.Identity
	err      error
}

func (r staticResolver) ResolveIdentity(_ context.Context, subject string) (httpx.Identity, error) {
	if r.err != nil {
		return httpx.Identity{}, r.err
	}
	id := r.identity
	id.Email = subject
	return id, nil
}

func testCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	c, err := jwtx.NewCodec(secret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	return c
}

func identityEcho(t *testing.T) (http.Handler, *httpx.Identity) {
	t.Helper()

	var captured httpx.Identity
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := httpx.IdentityFromContext(r.Context()); ok {
			captured = id
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNoContent) // marker: passed through unauthenticated
	})
	return h, &captured
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	codec := testCodec(t)
	resolver := staticResolver{identity: httpx.Identity{UserID: "u-1", Role: "ROLE_USER"}}

	t.Run("no header passes through unauthenticated", func(t *testing.T) {
		h, _ := identityEcho(t)
		rec := httptest.NewRecorder()
		httpx.Authenticate(codec, resolver)(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("non-bearer scheme passes through unauthenticated", func(t *testing.T) {
		h, _ := identityEcho(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		httpx.Authenticate(codec, resolver)(h).ServeHTTP(rec, r)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, err := codec.SignAccess("alice@example.com")
		require.NoError(t, err)

		h, captured := identityEcho(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		httpx.Authenticate(codec, resolver)(h).ServeHTTP(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u-1", captured.UserID)
		require.Equal(t, "alice@example.com", captured.Email)
		require.Equal(t, "ROLE_USER", captured.Role)
	})

	t.Run("expired token halts with token-expired problem", func(t *testing.T) {
		issued := testCodec(t)
		issued.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := issued.SignAccess("alice@example.com")
		require.NoError(t, err)

		h, _ := identityEcho(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		httpx.Authenticate(codec, resolver)(h).ServeHTTP(rec, r)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var p httpx.Problem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
		require.Equal(t, "https://kroya.app/problems/token-expired", p.Type)
	})

	t.Run("garbage token halts with token-malformed problem", func(t *testing.T) {
		h, _ := identityEcho(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		httpx.Authenticate(codec, resolver)(h).ServeHTTP(rec, r)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var p httpx.Problem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
		require.Equal(t, "https://kroya.app/problems/token-malformed", p.Type)
	})

	t.Run("unresolvable subject halts with unauthorized problem", func(t *testing.T) {
		token, err := codec.SignAccess("ghost@example.com")
		require.NoError(t, err)

		failing := staticResolver{err: errors.New("no such user")}
		h, _ := identityEcho(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		httpx.Authenticate(codec, failing)(h).ServeHTTP(rec, r)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var p httpx.Problem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
		require.Equal(t, "https://kroya.app/problems/unauthorized", p.Type)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	guard := httpx.RequireRole("ROLE_USER", "ROLE_ADMIN")

	t.Run("unauthenticated is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is 403", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := httpx.ContextWithIdentity(r.Context(), httpx.Identity{UserID: "u-1", Role: "ROLE_GUEST"})
		rec := httptest.NewRecorder()
		guard(okHandler()).ServeHTTP(rec, r.WithContext(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("permitted role passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := httpx.ContextWithIdentity(r.Context(), httpx.Identity{UserID: "u-1", Role: "ROLE_ADMIN"})
		rec := httptest.NewRecorder()
		guard(okHandler()).ServeHTTP(rec, r.WithContext(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

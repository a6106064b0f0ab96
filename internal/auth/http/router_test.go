package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/internal/auth/store"
	"github.com/kroyahq/kroya/internal/auth/store/drivers/sqlite"
	"github.com/kroyahq/kroya/pkg/cryptox"
	"github.com/kroyahq/kroya/pkg/httpx"
	"github.com/kroyahq/kroya/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "kroya-http-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type capturingMailer struct {
	mu   sync.Mutex
	last string // body of the most recent mail
}

func (m *capturingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = body
	return nil
}

var otpRe = regexp.MustCompile(`\b(\d{6})\b`)

func (m *capturingMailer) code(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	match := otpRe.FindStringSubmatch(m.last)
	require.Len(t, match, 2)
	return match[1]
}

type testEnv struct {
	server *httptest.Server
	store  store.Store
	codec  *jwtx.Codec
	mailer *capturingMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	codec, err := jwtx.NewCodec(secret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	mailer := &capturingMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(codec, "test", st, logger)
	router.AuthService = &service.AuthService{Store: st, Codec: codec}
	router.OtpService = &service.OtpService{Store: st, Mailer: mailer}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, store: st, codec: codec, mailer: mailer}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// signup walks the whole onboarding flow and returns the session pair.
func (e *testEnv) signup(t *testing.T, email, password string) domain.TokenPair {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/v1/auth/send-otp?email="+email, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/v1/auth/validate-otp?email="+email+"&otp="+e.mailer.code(t), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/v1/auth/register", map[string]string{
		"email":           email,
		"newPassword":     password,
		"confirmPassword": password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[domain.TokenPair](t, resp)
}

func TestSignupFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	t.Run("check-email-exist before signup is 404", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/auth/check-email-exist?email=new@example.com", nil, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		p := decodeBody[httpx.Problem](t, resp)
		require.Equal(t, "https://kroya.app/problems/user-not-found", p.Type)
	})

	t.Run("full flow: send-otp, validate-otp, register, login", func(t *testing.T) {
		pair := env.signup(t, "new@example.com", "password-123")
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		resp := env.do(t, http.MethodGet, "/v1/auth/check-email-exist?email=new@example.com", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[map[string]bool](t, resp)
		require.True(t, body["exists"])

		resp = env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
			"email":    "new@example.com",
			"password": "password-123",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("validate-otp with wrong code", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/send-otp?email=other@example.com", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		wrong := "000000"
		if env.mailer.code(t) == wrong {
			wrong = "000001"
		}
		resp = env.do(t, http.MethodPost, "/v1/auth/validate-otp?email=other@example.com&otp="+wrong, nil, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		p := decodeBody[httpx.Problem](t, resp)
		require.Equal(t, "https://kroya.app/problems/otp-mismatch", p.Type)
	})

	t.Run("register rejects weak password", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/register", map[string]string{
			"email":           "new@example.com",
			"newPassword":     "short",
			"confirmPassword": "short",
		}, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signup(t, "alice@example.com", "password-123")

	t.Run("bad json body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, env.server.URL+"/v1/auth/login", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "password-123",
		}, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password-1",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		p := decodeBody[httpx.Problem](t, resp)
		require.Equal(t, "https://kroya.app/problems/incorrect-password", p.Type)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	pair := env.signup(t, "bob@example.com", "password-123")

	t.Run("missing header reason", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/refresh-token", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		p := decodeBody[httpx.Problem](t, resp)
		require.Equal(t, "Missing or invalid Authorization header", p.Message)
	})

	t.Run("tampered token reason", func(t *testing.T) {
		tampered := pair.RefreshToken[:len(pair.RefreshToken)-4] + "AAAA"
		resp := env.do(t, http.MethodPost, "/v1/auth/refresh-token", nil, map[string]string{
			"Authorization": "Bearer " + tampered,
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		p := decodeBody[httpx.Problem](t, resp)
		require.Equal(t, "Invalid token or user not found", p.Message)
	})

	t.Run("valid refresh returns a new pair", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/refresh-token", nil, map[string]string{
			"Authorization": "Bearer " + pair.RefreshToken,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		fresh := decodeBody[domain.TokenPair](t, resp)
		require.NotEmpty(t, fresh.AccessToken)
		require.NotEqual(t, pair.AccessToken, fresh.AccessToken)
	})
}

func TestProtectedEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	pair := env.signup(t, "carol@example.com", "password-123")

	t.Run("me without token", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/users/me", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("me with token", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/users/me", nil, map[string]string{
			"Authorization": "Bearer " + pair.AccessToken,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[map[string]any](t, resp)
		require.Equal(t, "carol@example.com", body["email"])
		require.Equal(t, "ROLE_USER", body["role"])
		require.Equal(t, true, body["emailVerified"])
	})

	t.Run("save-user-info then me reflects the profile", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/save-user-info", map[string]string{
			"email":       "carol@example.com",
			"userName":    "Carol K",
			"phoneNumber": "012345678",
			"address":     "Phnom Penh",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.do(t, http.MethodGet, "/v1/users/me", nil, map[string]string{
			"Authorization": "Bearer " + pair.AccessToken,
		})
		body := decodeBody[map[string]any](t, resp)
		require.Equal(t, "Carol K", body["fullName"])
		require.Equal(t, "012345678", body["phoneNumber"])
		require.Equal(t, "Phnom Penh", body["location"])
	})

	t.Run("save-user-info rejects a bad phone number", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/save-user-info", map[string]string{
			"email":       "carol@example.com",
			"userName":    "Carol K",
			"phoneNumber": "12345",
		}, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("logout revokes and expired access is rejected after", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/auth/logout", nil, map[string]string{
			"Authorization": "Bearer " + pair.AccessToken,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		user, err := env.store.Users().GetUserByEmail(context.Background(), "carol@example.com")
		require.NoError(t, err)
		live, err := env.store.IssuedTokens().ListValidUserTokens(context.Background(), user.ID)
		require.NoError(t, err)
		require.Empty(t, live)
	})
}

func TestResetPasswordEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signup(t, "dave@example.com", "password-123")

	resp := env.do(t, http.MethodPost, "/v1/auth/reset-password", map[string]string{
		"email":           "dave@example.com",
		"newPassword":     "password-456",
		"confirmPassword": "password-456",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "dave@example.com",
		"password": "password-123",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "dave@example.com",
		"password": "password-456",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/livez", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]any](t, resp)
	require.Equal(t, "ok", body["status"])
}

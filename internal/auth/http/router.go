package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kroyahq/kroya/internal/auth/domain"
	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/internal/auth/store"
	"github.com/kroyahq/kroya/pkg/httpx"
	"github.com/kroyahq/kroya/pkg/jwtx"
	"github.com/kroyahq/kroya/pkg/slogx"

	_ "github.com/kroyahq/kroya/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	OtpService  *service.OtpService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Kroya Authentication Service API
//	@version		0.1.0
//	@description	Authentication backend for the Kroya food marketplace: email/password sessions with
//	@description	HS256 JWT access and refresh tokens, OTP email verification, and a durable token ledger.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /refresh-token - strict rate limit by IP (token exchange)
	r.Mux.Handle("POST /v1/auth/refresh-token",
		httpx.Chain(&RefreshHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /check-email-exist - lenient limit (signup form polls this)
	r.Mux.Handle("GET /v1/auth/check-email-exist",
		httpx.Chain(&CheckEmailHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /login - strict rate limit by IP + email to slow brute force
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /send-otp - strict limit by IP + target email (mail abuse)
	r.Mux.Handle("POST /v1/auth/send-otp",
		httpx.Chain(&SendOtpHandler{OtpService: r.OtpService},
			httpx.RateLimitByIPAndQuery(httpx.StrictLimit, "email"),
		),
	)

	// POST /validate-otp - strict limit by IP + email (code guessing)
	r.Mux.Handle("POST /v1/auth/validate-otp",
		httpx.Chain(&ValidateOtpHandler{OtpService: r.OtpService},
			httpx.RateLimitByIPAndQuery(httpx.StrictLimit, "email"),
		),
	)

	// POST /register - strict rate limit by IP
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /save-user-info - moderate rate limit
	r.Mux.Handle("POST /v1/auth/save-user-info",
		httpx.Chain(&SaveUserInfoHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /reset-password - strict rate limit by IP
	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(&ResetPasswordHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - bearer required, moderate limit by user
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(&LogoutHandler{AuthService: r.AuthService},
			httpx.Authenticate(r.codec, r.AuthService),
			httpx.RequireRole(domain.RoleUser.String(), domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	// Authenticated endpoint - lenient rate limit by user
	secured := httpx.Chain(&MeHandler{AuthService: r.AuthService},
		httpx.Authenticate(r.codec, r.AuthService),
		httpx.RequireRole(domain.RoleUser.String(), domain.RoleAdmin.String()),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/users/me", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

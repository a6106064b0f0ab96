package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kroyahq/kroya/pkg/jwtx"
	"github.com/kroyahq/kroya/pkg/slogx"
)

// IdentityResolver loads the caller for a verified token subject and
// re-checks that the token is still good for that user (subject equality
// plus non-expiry against the stored account).
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, subject string) (Identity, error)
}

// Authenticate verifies a bearer token if one is present and attaches the
// resolved caller identity to the request context. Requests without an
// Authorization header (or with a non-Bearer scheme) pass through
// unauthenticated; RequireRole decides whether that is acceptable for a
// given route. A present-but-bad token always halts with a problem body
// whose message names the failure kind.
func Authenticate(v jwtx.Verifier, resolver IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("bearer token rejected", "err", err)
				WriteProblem(w, tokenProblem(err))
				return
			}

			id, err := resolver.ResolveIdentity(ctx, claims.Subject)
			if err != nil {
				log.Warn("identity resolution failed", "subject", claims.Subject, "err", err)
				WriteProblem(w, ProblemUnauthorized("unauthorized", "Invalid token or user not found"))
				return
			}

			ctx = ContextWithIdentity(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenProblem maps a jwtx verification error to a problem body with a
// distinct type and message per failure kind.
func tokenProblem(err error) Problem {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return ProblemUnauthorized("token-expired", "Token has expired")
	case errors.Is(err, jwtx.ErrMalformed):
		return ProblemUnauthorized("token-malformed", "Token is malformed")
	case errors.Is(err, jwtx.ErrInvalidSig):
		return ProblemUnauthorized("bad-signature", "Token signature is invalid")
	case errors.Is(err, jwtx.ErrUnsupportedAlg):
		return ProblemUnauthorized("unsupported-token", "Token signing method is not supported")
	default:
		return ProblemUnauthorized("unauthorized", "Token is invalid")
	}
}

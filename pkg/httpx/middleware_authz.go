package httpx

import "net/http"

// RequireRole guards a route: unauthenticated callers get 401, callers
// whose role is not in the permitted set get 403.
func RequireRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				WriteProblem(w, ProblemUnauthorized("unauthorized", "Authentication required"))
				return
			}
			if _, ok := want[id.Role]; !ok {
				WriteProblem(w, ProblemForbidden("Insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package httpx

import "context"

// Identity is the authenticated caller attached to a request context by
// the access gate. It is always passed explicitly with the request; there
// is no ambient global caller state.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// ContextWithIdentity attaches the authenticated caller to the request
// context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}

package auth

import "context"

// Identity is the verified caller attached to a request context by the auth
// middleware. It is the only legitimate source of ownership for protected
// handlers; client-supplied owner fields are never trusted.
type Identity struct {
	UserID int64
	Email  string
}

type identityKey struct{}

// WithIdentity returns a new context carrying the verified identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the verified identity, reporting whether
// one is present. Handlers behind the auth middleware can rely on ok=true.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

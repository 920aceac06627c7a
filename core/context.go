package core

import "context"

// Identity is the request-scoped authenticated identity derived from a valid
// session credential. It is attached to the request context by the auth
// middleware and never persisted.
type Identity struct {
	PublicKey string
}

type identityKey struct{}

// WithIdentity returns a new context with the identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the identity from the context, returning nil
// if the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

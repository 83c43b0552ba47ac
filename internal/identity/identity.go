// Package identity resolves the caller identity for a request.
// An absent identity is a normal outcome, not an error: anonymous callers
// get empty pricing results and no live-visitor widget and nothing else.
package identity

import "context"

// Identity is a resolved caller.
type Identity struct {
	UserID string
}

// Resolver resolves the current caller identity.
// Current returns (nil, nil) when no identity is present.
type Resolver interface {
	Current(ctx context.Context) (*Identity, error)
}

type ctxKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the identity from ctx, or nil if none was set.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKey{}).(*Identity)
	return id
}

// ContextResolver resolves identity from the request context, where the
// HTTP auth middleware places it.
type ContextResolver struct{}

// Current returns the identity carried by ctx, or (nil, nil) when absent.
func (ContextResolver) Current(ctx context.Context) (*Identity, error) {
	return FromContext(ctx), nil
}

// StaticResolver always resolves to a fixed identity. Useful in tests and
// in the seed CLI.
type StaticResolver struct {
	ID *Identity
}

// Current returns the fixed identity.
func (r StaticResolver) Current(context.Context) (*Identity, error) {
	return r.ID, nil
}

var (
	_ Resolver = ContextResolver{}
	_ Resolver = StaticResolver{}
)

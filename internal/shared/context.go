package shared

import "context"

// Principal identifies the authenticated caller for the current request.
// Authentication itself happens upstream; handlers only consume the
// resolved identity.
type Principal struct {
	UserID int64
	Role   string
}

type principalContextKey struct{}

// ContextWithPrincipal stores the caller identity in context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the caller identity from context.
// The boolean reports whether a principal was attached at all.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

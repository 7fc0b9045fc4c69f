// Package principal carries the acting user's name through request context.
// Unauthenticated flows (seeding, migrations) fall back to the System actor.
package principal

import "context"

// SystemActor is the sentinel recorded when no principal is present.
const SystemActor = "System"

type ctxKey struct{}

// WithName returns a context carrying the acting principal's name.
func WithName(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, name)
}

// NameFrom returns the acting principal's name, or SystemActor when absent.
func NameFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return SystemActor
}

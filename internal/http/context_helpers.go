package httpx

import (
	"context"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
)

// claimKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type claimKey struct{}

// resolvedPathKey carries the path the route gate resolved for the request.
type resolvedPathKey struct{}

// SetClaimInContext returns a child context that carries the given session claim.
func SetClaimInContext(ctx context.Context, claim domainauth.Claim) context.Context {
	return context.WithValue(ctx, claimKey{}, claim)
}

// GetClaimFromContext returns the session claim from context and a boolean
// indicating presence.
func GetClaimFromContext(ctx context.Context) (domainauth.Claim, bool) {
	claim, ok := ctx.Value(claimKey{}).(domainauth.Claim)
	return claim, ok
}

// SetResolvedPathInContext records the path the gate resolved for downstream
// handlers.
func SetResolvedPathInContext(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, resolvedPathKey{}, path)
}

// GetResolvedPathFromContext returns the gate-resolved path, or "" when the
// gate did not run.
func GetResolvedPathFromContext(ctx context.Context) string {
	if p, ok := ctx.Value(resolvedPathKey{}).(string); ok {
		return p
	}
	return ""
}

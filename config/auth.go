package config

import (
	"errors"
	"time"
)

// devSessionSecret is the placeholder signing secret used outside production
// when SESSION_SECRET is unset. Production refuses to start without a real
// secret; see AuthConfig.Validate.
const devSessionSecret = "dev-insecure-session-secret"

// AuthConfig groups session signing and admin authorization configuration.
type AuthConfig struct {
	// SessionSecret is the HMAC key used to sign admin session cookies.
	// Required in production; a development placeholder is substituted
	// elsewhere.
	SessionSecret string `env:"SESSION_SECRET"`

	// RefreshInterval is how old a session claim may grow before the
	// whoami endpoint re-signs it. Revocation (deactivated account, role
	// change) takes effect within RefreshInterval of the next whoami call,
	// not immediately.
	RefreshInterval time.Duration `env:"AUTH_REFRESH_INTERVAL" envDefault:"30m"`

	// CookieMaxAge is the client-side lifetime of the admin session cookie.
	CookieMaxAge time.Duration `env:"AUTH_COOKIE_MAX_AGE" envDefault:"168h"`

	// DenyUnlistedAdminPaths switches the admin route gate from the
	// historical default-allow (any authenticated session may reach an
	// admin path without a permission table entry) to deny-by-default.
	DenyUnlistedAdminPaths bool `env:"AUTH_DENY_UNLISTED_ADMIN_PATHS" envDefault:"false"`
}

// Sanitize applies guardrails and substitutes the development placeholder
// secret outside production.
func (a *AuthConfig) Sanitize(isProd bool) {
	if a.RefreshInterval <= 0 {
		a.RefreshInterval = 30 * time.Minute
	}
	if a.CookieMaxAge <= 0 {
		a.CookieMaxAge = 7 * 24 * time.Hour
	}
	if a.SessionSecret == "" && !isProd {
		a.SessionSecret = devSessionSecret
	}
}

// Validate enforces startup invariants. A missing session secret in
// production is a configuration error, never a silent fallback.
func (a *AuthConfig) Validate(isProd bool) error {
	if isProd && (a.SessionSecret == "" || a.SessionSecret == devSessionSecret) {
		return errors.New("SESSION_SECRET must be set in production")
	}
	return nil
}

package httpx

import (
	"net/http"
	"time"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
)

// CookieSettings carries the deployment-dependent attributes of the admin
// session cookie.
type CookieSettings struct {
	// Secure marks the cookie HTTPS-only. On in production.
	Secure bool
	// Domain scopes the cookie; empty means host-only.
	Domain string
	// MaxAge is the client-side cookie lifetime.
	MaxAge time.Duration
}

// setSessionCookie writes the signed session token. HttpOnly and SameSite=Lax
// are fixed; Secure and MaxAge come from deployment configuration.
func setSessionCookie(w http.ResponseWriter, token string, cs CookieSettings) {
	maxAge := cs.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	http.SetCookie(w, &http.Cookie{
		Name:     domainauth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cs.Domain,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie with the same attributes it
// was set with, so the browser actually drops it.
func clearSessionCookie(w http.ResponseWriter, cs CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     domainauth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cs.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/observability/statsd"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics returns a middleware that counts and times HTTP requests. Tags are
// method and status only; paths carry IDs and slugs and would blow up metric
// cardinality.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			tags := map[string]string{
				"method": r.Method,
				"status": strconv.Itoa(ww.status),
			}
			sink.Count("http.requests", 1, tags)
			sink.Timing("http.request_duration", time.Since(start), tags)
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ResolvedPathHeader carries the gate-resolved path to downstream handlers
// and, in development, back to the client for debugging.
const ResolvedPathHeader = "X-Resolved-Path"

const (
	adminLoginPath        = "/admin/login"
	adminHomePath         = "/admin"
	unauthorizedRedirect  = "/admin?error=unauthorized"
	loginRedirectTemplate = "/admin/login?redirect="
)

// AdminPermissions is the exact-path permission table for admin pages.
// SUPER_ADMIN bypasses every entry; paths absent from the table fall to the
// gate's unlisted-path policy.
func AdminPermissions() map[string][]domainauth.Role {
	return map[string][]domainauth.Role{
		"/admin":               {domainauth.RoleSuperAdmin, domainauth.RoleAdmin},
		"/admin/applications":  {domainauth.RoleSuperAdmin, domainauth.RoleAdmin},
		"/admin/events":        {domainauth.RoleSuperAdmin, domainauth.RoleAdmin},
		"/admin/announcements": {domainauth.RoleSuperAdmin, domainauth.RoleAdmin},
		"/admin/donations":     {domainauth.RoleSuperAdmin, domainauth.RoleAdmin},
		"/admin/settings":      {domainauth.RoleSuperAdmin},
		"/admin/users":         {domainauth.RoleSuperAdmin},
	}
}

// ClaimDecoder verifies a session cookie value into a claim.
type ClaimDecoder interface {
	Decode(token string) (domainauth.Claim, error)
}

// AdminGateConfig groups dependencies for the admin route gate.
type AdminGateConfig struct {
	Codec ClaimDecoder
	// Permissions maps exact admin paths to the roles allowed to visit them.
	Permissions map[string][]domainauth.Role
	// DenyUnlisted flips unlisted admin paths from allow-any-authenticated
	// to deny-by-default.
	DenyUnlisted bool
}

// AdminGate fronts every request. Non-admin paths pass through with the
// resolved-path marker attached. Admin paths (except the login page) require
// a valid session cookie and, for paths listed in the permission table, an
// allowed role. The gate never fails a request with an error: every branch
// is pass-through or redirect.
func AdminGate(cfg AdminGateConfig) func(http.Handler) http.Handler {
	perms := cfg.Permissions
	if perms == nil {
		perms = AdminPermissions()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			r = withResolvedPath(r, path)

			if !isAdminPath(path) || path == adminLoginPath {
				next.ServeHTTP(w, r)
				return
			}

			claim, ok := decodeSessionCookie(r, cfg.Codec)
			if !ok {
				http.Redirect(w, r, loginRedirectTemplate+url.QueryEscape(path), http.StatusSeeOther)
				return
			}

			if !claimAllowed(claim, perms, path, cfg.DenyUnlisted) {
				http.Redirect(w, r, unauthorizedRedirect, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetClaimInContext(r.Context(), claim)))
		})
	}
}

// RequireAdminAPI guards /api/admin/* routes. Same decode as the browser
// gate, but API callers get JSON status codes instead of redirects.
func RequireAdminAPI(codec ClaimDecoder, roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claim, ok := decodeSessionCookie(r, codec)
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			if len(roles) > 0 && !claim.IsSuperAdmin() && !roleListed(claim.Role, roles) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(SetClaimInContext(r.Context(), claim)))
		})
	}
}

// isAdminPath matches /admin and anything under /admin/, but not e.g.
// /administrator.
func isAdminPath(path string) bool {
	return path == adminHomePath || strings.HasPrefix(path, adminHomePath+"/")
}

// decodeSessionCookie reads and verifies the admin session cookie. A missing
// cookie and a tampered one are indistinguishable to callers.
func decodeSessionCookie(r *http.Request, codec ClaimDecoder) (domainauth.Claim, bool) {
	if codec == nil {
		return domainauth.Claim{}, false
	}
	cookie, err := r.Cookie(domainauth.SessionCookieName)
	if err != nil {
		return domainauth.Claim{}, false
	}
	claim, err := codec.Decode(cookie.Value)
	if err != nil {
		return domainauth.Claim{}, false
	}
	return claim, true
}

func claimAllowed(claim domainauth.Claim, perms map[string][]domainauth.Role, path string, denyUnlisted bool) bool {
	if claim.IsSuperAdmin() {
		return true
	}
	allowed, listed := perms[path]
	if !listed {
		return !denyUnlisted
	}
	return roleListed(claim.Role, allowed)
}

func roleListed(role domainauth.Role, roles []domainauth.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// withResolvedPath stamps the request with the path the gate resolved, both
// as a request header and as a context value.
func withResolvedPath(r *http.Request, path string) *http.Request {
	r = r.WithContext(SetResolvedPathInContext(r.Context(), path))
	r.Header.Set(ResolvedPathHeader, path)
	return r
}

// Package httpx provides HTTP handlers and middleware for the portal API and
// admin pages.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayanisma-dernegi/portal/internal/domain/model"
	"github.com/dayanisma-dernegi/portal/internal/service"
)

// AuthHandlers provides HTTP handlers for admin login, logout, and whoami.
type AuthHandlers struct {
	Svc    *service.AuthService
	Cookie CookieSettings
	Logger *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the wire shape of an admin account in auth responses.
type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func userPayloadFrom(u *model.AdminUser) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

// Login handles POST /api/admin/login. All credential failures answer a
// uniform 401 so callers cannot probe which emails exist.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	res, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
			return
		}
		h.logError(r, "login failed", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: errors.New("login failed")})
		return
	}

	setSessionCookie(w, res.Token, h.Cookie)
	WriteJSON(w, http.StatusOK, map[string]any{"user": userPayloadFrom(res.User)})
}

// Logout handles POST /api/admin/logout. Always clears the cookie, even for
// requests that never carried one.
func (h *AuthHandlers) Logout(w http.ResponseWriter, _ *http.Request) {
	clearSessionCookie(w, h.Cookie)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/admin/me. The session claim is reconciled against the
// account store; a claim past the refresh interval comes back with a
// re-signed cookie. A store outage is 503, never a logout.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claim, ok := GetClaimFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	res, err := h.Svc.Refresh(r.Context(), claim)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			clearSessionCookie(w, h.Cookie)
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "unauthenticated", Err: err})
			return
		}
		h.logError(r, "session refresh failed", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "store_unavailable",
			Err:     errors.New("account store unavailable"),
		})
		return
	}

	if res.Token != "" {
		setSessionCookie(w, res.Token, h.Cookie)
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": userPayloadFrom(res.User)})
}

func (h *AuthHandlers) logError(r *http.Request, msg string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.ErrorContext(r.Context(), msg, "err", err, "path", r.URL.Path)
}

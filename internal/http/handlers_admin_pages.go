package httpx

import (
	"html"
	"io"
	"net/http"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
)

// AdminPageHandlers serves the admin page shells behind the route gate. The
// shells are minimal HTML documents the frontend hydrates; they exist so the
// gate fronts real handlers for every table entry.
type AdminPageHandlers struct{}

// Login serves the login page shell. Reachable without a session.
func (h *AdminPageHandlers) Login(w http.ResponseWriter, _ *http.Request) {
	writePageShell(w, "Giriş", "login")
}

// Dashboard serves /admin. The gate has already verified the session, so a
// claim is always present here.
func (h *AdminPageHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	claim, _ := GetClaimFromContext(r.Context())
	writePageShellFor(w, "Yönetim Paneli", "dashboard", claim)
}

// Section serves a named admin section shell (applications, events, ...).
func (h *AdminPageHandlers) Section(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claim, _ := GetClaimFromContext(r.Context())
		writePageShellFor(w, title, page, claim)
	}
}

func writePageShell(w http.ResponseWriter, title, page string) {
	writePageShellFor(w, title, page, domainauth.Claim{})
}

func writePageShellFor(w http.ResponseWriter, title, page string, claim domainauth.Claim) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	doc := `<!DOCTYPE html>
<html lang="tr">
<head><meta charset="utf-8"><title>` + html.EscapeString(title) + `</title></head>
<body data-page="` + html.EscapeString(page) + `" data-user="` + html.EscapeString(claim.Name) + `">
<div id="app"></div>
</body>
</html>`
	if _, err := io.WriteString(w, doc); err != nil {
		return
	}
}

package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/session"
)

func newTestCodec(t *testing.T) *session.Codec {
	t.Helper()
	codec, err := session.NewCodec("middleware-test-secret")
	require.NoError(t, err)
	return codec
}

func signedCookie(t *testing.T, codec *session.Codec, role domainauth.Role) *http.Cookie {
	t.Helper()
	token, err := codec.Encode(domainauth.Claim{
		AdminUserID: "7d0b6a2e-0000-4000-8000-000000000001",
		Role:        role,
		Email:       "yonetici@dernek.org",
		Name:        "Ayşe Yılmaz",
		IssuedAt:    1756684800,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: domainauth.SessionCookieName, Value: token}
}

// gateProbe records whether the wrapped handler ran and what the gate stamped
// on the request.
type gateProbe struct {
	called       bool
	resolvedPath string
	headerPath   string
	claim        domainauth.Claim
	claimOK      bool
}

func (p *gateProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.resolvedPath = GetResolvedPathFromContext(r.Context())
		p.headerPath = r.Header.Get(ResolvedPathHeader)
		p.claim, p.claimOK = GetClaimFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminGatePublicPathPassesThrough(t *testing.T) {
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: newTestCodec(t)})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, probe.called)
	assert.Equal(t, "/api/events", probe.resolvedPath)
	assert.Equal(t, "/api/events", probe.headerPath)
	assert.False(t, probe.claimOK)
}

func TestAdminGateIgnoresAdminPrefixedNonAdminPath(t *testing.T) {
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: newTestCodec(t)})(probe.handler())

	// /administrator shares the byte prefix but is not under /admin.
	req := httptest.NewRequest(http.MethodGet, "/administrator", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, probe.called)
}

func TestAdminGateLoginPageBypassesAuth(t *testing.T) {
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: newTestCodec(t)})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, probe.called)
}

func TestAdminGateMissingCookieRedirectsToLogin(t *testing.T) {
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: newTestCodec(t)})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login?redirect=%2Fadmin%2Fevents", w.Header().Get("Location"))
	assert.False(t, probe.called)
}

func TestAdminGateTamperedCookieRedirectsToLogin(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: codec})(probe.handler())

	cookie := signedCookie(t, codec, domainauth.RoleAdmin)
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login?redirect=%2Fadmin", w.Header().Get("Location"))
	assert.False(t, probe.called)
}

func TestAdminGateAllowsListedRole(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: codec})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, probe.claimOK)
	assert.Equal(t, domainauth.RoleAdmin, probe.claim.Role)
	assert.Equal(t, "/admin/events", probe.resolvedPath)
}

func TestAdminGateDeniedRoleRedirectsToDashboard(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: codec})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin?error=unauthorized", w.Header().Get("Location"))
	assert.False(t, probe.called)
}

func TestAdminGateSuperAdminBypassesPermissionTable(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: codec})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleSuperAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, probe.called)
}

func TestAdminGateUnlistedPathDefaultAllow(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: codec})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, probe.called)
}

func TestAdminGateUnlistedPathDenyUnlisted(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: codec, DenyUnlisted: true})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin?error=unauthorized", w.Header().Get("Location"))
	assert.False(t, probe.called)
}

func TestAdminGateDenyUnlistedStillAllowsSuperAdmin(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := AdminGate(AdminGateConfig{Codec: codec, DenyUnlisted: true})(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleSuperAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, probe.called)
}

func TestRequireAdminAPIMissingCookie(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := RequireAdminAPI(codec)(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
	assert.False(t, probe.called)
}

func TestRequireAdminAPIWrongRole(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := RequireAdminAPI(codec, domainauth.RoleSuperAdmin)(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
	assert.False(t, probe.called)
}

func TestRequireAdminAPISuperAdminBypass(t *testing.T) {
	codec := newTestCodec(t)
	probe := &gateProbe{}
	handler := RequireAdminAPI(codec, domainauth.RoleAdmin)(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/donations", nil)
	req.AddCookie(signedCookie(t, codec, domainauth.RoleSuperAdmin))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, probe.claimOK)
	assert.Equal(t, domainauth.RoleSuperAdmin, probe.claim.Role)
}

type sinkCall struct {
	name string
	tags map[string]string
}

// recordingSink captures metric emissions for assertions.
type recordingSink struct {
	counts  []sinkCall
	values  []int64
	timings []sinkCall
}

func (s *recordingSink) Count(name string, value int64, tags map[string]string) {
	s.counts = append(s.counts, sinkCall{name: name, tags: tags})
	s.values = append(s.values, value)
}

func (s *recordingSink) Timing(name string, _ time.Duration, tags map[string]string) {
	s.timings = append(s.timings, sinkCall{name: name, tags: tags})
}

func TestMetricsMiddlewareTagsMethodAndStatus(t *testing.T) {
	sink := &recordingSink{}
	handler := Metrics(sink)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events/ankara-kahvalti", nil))

	require.Len(t, sink.counts, 1)
	assert.Equal(t, "http.requests", sink.counts[0].name)
	assert.Equal(t, int64(1), sink.values[0])
	assert.Equal(t, map[string]string{"method": "POST", "status": "404"}, sink.counts[0].tags)

	require.Len(t, sink.timings, 1)
	assert.Equal(t, "http.request_duration", sink.timings[0].name)
	assert.Equal(t, sink.counts[0].tags, sink.timings[0].tags)
}

func TestMetricsMiddlewareDefaultsToOK(t *testing.T) {
	sink := &recordingSink{}
	handler := Metrics(sink)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, sink.counts, 1)
	assert.Equal(t, "200", sink.counts[0].tags["status"])
}

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/dayanisma-dernegi/portal/internal/data"
	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
	"github.com/dayanisma-dernegi/portal/internal/mocks"
	"github.com/dayanisma-dernegi/portal/internal/service"
	"github.com/dayanisma-dernegi/portal/internal/session"
)

const handlerTestPassword = "correct horse battery"

var handlerTestNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type authHandlerFixture struct {
	handlers *AuthHandlers
	accounts *mocks.MockAccountStore
	codec    *session.Codec
	user     *model.AdminUser
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountStore(ctrl)
	codec, err := session.NewCodec("auth-handler-test-secret")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &authHandlerFixture{
		handlers: &AuthHandlers{
			Svc: service.NewAuthService(service.AuthServiceOptions{
				Accounts:        accounts,
				Codec:           codec,
				RefreshInterval: 30 * time.Minute,
				TimeProvider:    data.NewFixedTimeProvider(handlerTestNow),
			}),
		},
		accounts: accounts,
		codec:    codec,
		user: &model.AdminUser{
			ID:           "2b6e1c9a-0000-4000-8000-000000000042",
			Email:        "yonetici@dernek.org",
			Name:         "Ayşe Yılmaz",
			Role:         domainauth.RoleAdmin,
			PasswordHash: string(hash),
			IsActive:     true,
		},
	}
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == domainauth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginHandlerSuccess(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accounts.EXPECT().GetByEmail(gomock.Any(), f.user.Email).Return(f.user, nil)

	body := `{"email":"yonetici@dernek.org","password":"` + handlerTestPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	f.handlers.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookieFrom(t, w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	claim, err := f.codec.Decode(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, claim.AdminUserID)

	var resp struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, f.user.ID, resp.User.ID)
	assert.Equal(t, "ADMIN", resp.User.Role)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accounts.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, data.ErrAdminUserNotFound)

	body := `{"email":"nobody@dernek.org","password":"whatever123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	f.handlers.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
	assert.Nil(t, sessionCookieFrom(t, w))
}

func TestLoginHandlerMissingFields(t *testing.T) {
	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"email":"a@b.org"}`))
	w := httptest.NewRecorder()
	f.handlers.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestLoginHandlerStoreFailureHidesDetails(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accounts.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: connection refused"))

	body := `{"email":"yonetici@dernek.org","password":"whatever123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	f.handlers.Login(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "login_failed")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	w := httptest.NewRecorder()
	f.handlers.Logout(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	cookie := sessionCookieFrom(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func meRequest(t *testing.T, claim domainauth.Claim) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	return req.WithContext(SetClaimInContext(req.Context(), claim))
}

func (f *authHandlerFixture) freshClaim() domainauth.Claim {
	return domainauth.Claim{
		AdminUserID: f.user.ID,
		Role:        f.user.Role,
		Email:       f.user.Email,
		Name:        f.user.Name,
		IssuedAt:    handlerTestNow.Add(-time.Minute).Unix(),
	}
}

func TestMeHandlerFreshSession(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), f.user.ID).Return(f.user, nil)

	w := httptest.NewRecorder()
	f.handlers.Me(w, meRequest(t, f.freshClaim()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), f.user.Email)
	// No re-sign below the refresh interval, so no Set-Cookie.
	assert.Nil(t, sessionCookieFrom(t, w))
}

func TestMeHandlerAgedSessionReSignsCookie(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), f.user.ID).Return(f.user, nil)

	claim := f.freshClaim()
	claim.IssuedAt = handlerTestNow.Add(-time.Hour).Unix()

	w := httptest.NewRecorder()
	f.handlers.Me(w, meRequest(t, claim))

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookieFrom(t, w)
	require.NotNil(t, cookie)
	fresh, err := f.codec.Decode(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, handlerTestNow.Unix(), fresh.IssuedAt)
}

func TestMeHandlerNoClaim(t *testing.T) {
	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	w := httptest.NewRecorder()
	f.handlers.Me(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestMeHandlerDeadAccountClearsCookie(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), f.user.ID).Return(nil, data.ErrAdminUserNotFound)

	w := httptest.NewRecorder()
	f.handlers.Me(w, meRequest(t, f.freshClaim()))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
	cookie := sessionCookieFrom(t, w)
	require.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge)
}

func TestMeHandlerStoreOutageIs503NotLogout(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), f.user.ID).Return(nil, errors.New("pq: connection refused"))

	w := httptest.NewRecorder()
	f.handlers.Me(w, meRequest(t, f.freshClaim()))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "store_unavailable")
	// The cookie survives a store outage.
	assert.Nil(t, sessionCookieFrom(t, w))
}

package service

import (
	"context"
	"errors"
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
	"github.com/dayanisma-dernegi/portal/internal/session"
)

const testPassword = "correct horse battery"

var authTestNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func activeAdmin(t *testing.T) *model.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.AdminUser{
		ID:           "2b6e1c9a-0000-4000-8000-000000000042",
		Email:        "yonetici@dernek.org",
		Name:         "Ayşe Yılmaz",
		Role:         domainauth.RoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

type authFixture struct {
	svc      *AuthService
	accounts *mocks.MockAccountStore
	codec    *session.Codec
	clock    *data.FixedTimeProvider
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountStore(ctrl)
	codec, err := session.NewCodec("auth-service-test-secret")
	require.NoError(t, err)
	clock := data.NewFixedTimeProvider(authTestNow)
	return &authFixture{
		svc: NewAuthService(AuthServiceOptions{
			Accounts:        accounts,
			Codec:           codec,
			RefreshInterval: 30 * time.Minute,
			TimeProvider:    clock,
		}),
		accounts: accounts,
		codec:    codec,
		clock:    clock,
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	user := activeAdmin(t)
	f.accounts.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	res, err := f.svc.Login(context.Background(), user.Email, testPassword)
	require.NoError(t, err)
	assert.Equal(t, user, res.User)

	claim, err := f.codec.Decode(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claim.AdminUserID)
	assert.Equal(t, user.Role, claim.Role)
	assert.Equal(t, authTestNow.Unix(), claim.IssuedAt)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.EXPECT().GetByEmail(gomock.Any(), "nobody@dernek.org").Return(nil, data.ErrAdminUserNotFound)

	_, err := f.svc.Login(context.Background(), "nobody@dernek.org", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := activeAdmin(t)
	f.accounts.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, err := f.svc.Login(context.Background(), user.Email, "wrong password!!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := activeAdmin(t)
	user.IsActive = false
	f.accounts.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	// Deactivated accounts get the same answer as bad credentials.
	_, err := f.svc.Login(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStoreFailureIsNotInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	storeErr := errors.New("connection refused")
	f.accounts.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	_, err := f.svc.Login(context.Background(), "yonetici@dernek.org", testPassword)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, storeErr)
}

func TestRefreshFreshClaimKeepsToken(t *testing.T) {
	f := newAuthFixture(t)
	user := activeAdmin(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	claim := domainauth.Claim{
		AdminUserID: user.ID,
		Role:        user.Role,
		Email:       user.Email,
		Name:        user.Name,
		IssuedAt:    authTestNow.Add(-29 * time.Minute).Unix(),
	}
	res, err := f.svc.Refresh(context.Background(), claim)
	require.NoError(t, err)
	assert.Empty(t, res.Token)
	assert.Equal(t, claim, res.Claim)
	assert.Equal(t, user, res.User)
}

func TestRefreshAgedClaimReSigns(t *testing.T) {
	f := newAuthFixture(t)
	user := activeAdmin(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	claim := domainauth.Claim{
		AdminUserID: user.ID,
		Role:        user.Role,
		Email:       "eski@dernek.org",
		Name:        user.Name,
		IssuedAt:    authTestNow.Add(-30 * time.Minute).Unix(),
	}
	res, err := f.svc.Refresh(context.Background(), claim)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	// The re-signed claim reflects the current account record, not the
	// stale cookie copy.
	fresh, err := f.codec.Decode(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, fresh.Email)
	assert.Equal(t, authTestNow.Unix(), fresh.IssuedAt)
	assert.Equal(t, fresh, res.Claim)
}

func TestRefreshDeletedAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, data.ErrAdminUserNotFound)

	_, err := f.svc.Refresh(context.Background(), domainauth.Claim{AdminUserID: "gone", Role: domainauth.RoleAdmin})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefreshInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := activeAdmin(t)
	user.IsActive = false
	f.accounts.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	_, err := f.svc.Refresh(context.Background(), domainauth.Claim{AdminUserID: user.ID, Role: user.Role})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefreshRoleChangeEndsSession(t *testing.T) {
	f := newAuthFixture(t)
	user := activeAdmin(t)
	f.accounts.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

	// The cookie says SUPER_ADMIN but the record says ADMIN; a demotion must
	// not ride out on a cached claim.
	_, err := f.svc.Refresh(context.Background(), domainauth.Claim{
		AdminUserID: user.ID,
		Role:        domainauth.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefreshStoreFailureIsNotUnauthenticated(t *testing.T) {
	f := newAuthFixture(t)
	storeErr := errors.New("connection refused")
	f.accounts.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	_, err := f.svc.Refresh(context.Background(), domainauth.Claim{AdminUserID: "id", Role: domainauth.RoleAdmin})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, storeErr)
}

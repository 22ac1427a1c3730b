package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dayanisma-dernegi/portal/internal/data"
	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
	"github.com/dayanisma-dernegi/portal/internal/ports"
)

// ErrInvalidCredentials is returned for any login failure an attacker could
// probe: unknown email, wrong password, or a deactivated account. Callers
// must not distinguish between them.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated is returned when a structurally valid session no longer
// corresponds to a live admin account. The HTTP layer clears the cookie.
var ErrUnauthenticated = errors.New("unauthenticated")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Accounts ports.AccountStore
	Codec    ports.ClaimCodec
	// RefreshInterval is the minimum claim age before the session cookie is
	// re-signed on a whoami read.
	RefreshInterval time.Duration
	TimeProvider    data.TimeProvider
}

// AuthService orchestrates admin login and session refresh against the
// account store.
type AuthService struct {
	accounts        ports.AccountStore
	codec           ports.ClaimCodec
	refreshInterval time.Duration
	timeProvider    data.TimeProvider
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	tp := opts.TimeProvider
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &AuthService{
		accounts:        opts.Accounts,
		codec:           opts.Codec,
		refreshInterval: interval,
		timeProvider:    tp,
	}
}

// LoginResult carries the authenticated account and its freshly signed token.
type LoginResult struct {
	User  *model.AdminUser
	Token string
}

// Login verifies credentials and signs a fresh session claim. Every failure
// mode that depends on attacker-controlled input collapses to
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrAdminUserNotFound) {
			// Burn a bcrypt comparison so unknown emails cost the same as
			// wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Encode(s.claimFor(user))
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

// dummyHash is a bcrypt hash of an unguessable throwaway value, used to keep
// login timing flat when the email is unknown.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// RefreshResult carries the reconciled account and, when the claim aged past
// the refresh interval, a re-signed token for the cookie.
type RefreshResult struct {
	User *model.AdminUser
	// Token is non-empty only when the session was re-signed.
	Token string
	Claim domainauth.Claim
}

// Refresh reconciles a decoded session claim against the account store. This
// is the only place cached claim fields are checked for staleness: a deleted
// or deactivated account, or a role that changed in either direction, ends
// the session with ErrUnauthenticated. Store failures are reported as-is so
// the HTTP layer can answer 5xx instead of logging the admin out.
func (s *AuthService) Refresh(ctx context.Context, claim domainauth.Claim) (*RefreshResult, error) {
	user, err := s.accounts.GetByID(ctx, claim.AdminUserID)
	if err != nil {
		if errors.Is(err, data.ErrAdminUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	if user.Role != claim.Role {
		return nil, ErrUnauthenticated
	}

	res := &RefreshResult{User: user, Claim: claim}

	now := s.timeProvider.Now()
	if claim.Age(now) >= s.refreshInterval {
		fresh := s.claimFor(user)
		token, encErr := s.codec.Encode(fresh)
		if encErr != nil {
			return nil, fmt.Errorf("re-sign session: %w", encErr)
		}
		res.Token = token
		res.Claim = fresh
	}
	return res, nil
}

func (s *AuthService) claimFor(user *model.AdminUser) domainauth.Claim {
	return domainauth.Claim{
		AdminUserID: user.ID,
		Role:        user.Role,
		Email:       user.Email,
		Name:        user.Name,
		IssuedAt:    s.timeProvider.Now().Unix(),
	}
}

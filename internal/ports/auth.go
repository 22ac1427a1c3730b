package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/data and internal/session; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// AccountStore retrieves admin accounts for session reconciliation and login.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (*model.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

// ClaimCodec signs session claims into cookie tokens and verifies them back.
type ClaimCodec interface {
	Encode(claim domainauth.Claim) (string, error)
	Decode(token string) (domainauth.Claim, error)
}

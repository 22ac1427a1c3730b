package model

import (
	"time"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
)

// AdminUser is the persisted administrative account. The session claim caches
// Role/Email/Name as of last issuance; this record is the authority.
type AdminUser struct {
	ID           string          `json:"id"         db:"id"`
	Email        string          `json:"email"      db:"email"`
	Name         string          `json:"name"       db:"name"`
	Role         domainauth.Role `json:"role"       db:"role"`
	PasswordHash string          `json:"-"          db:"password_hash"`
	IsActive     bool            `json:"is_active"  db:"is_active"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateAdminUserRequest holds fields for creating an admin account.
type CreateAdminUserRequest struct {
	Email    string          `json:"email"    validate:"required,email"`
	Name     string          `json:"name"     validate:"required,max=120"`
	Role     domainauth.Role `json:"role"     validate:"required"`
	Password string          `json:"password" validate:"required,min=10,max=128"`
}

// Validate checks the request including the role enumeration (validator tags
// cannot express the Role type's value set).
func (r *CreateAdminUserRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !r.Role.Valid() {
		return newRequestError("invalid role %q", r.Role)
	}
	return nil
}

// UpdateAdminUserRequest holds optional fields for updating an admin account.
type UpdateAdminUserRequest struct {
	Name     *string          `json:"name,omitempty"      validate:"omitempty,max=120"`
	Role     *domainauth.Role `json:"role,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

// Validate checks the request and requires at least one field to be set.
func (r *UpdateAdminUserRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Role != nil && !r.Role.Valid() {
		return newRequestError("invalid role %q", *r.Role)
	}
	if r.Name == nil && r.Role == nil && r.IsActive == nil {
		return errUpdateEmpty
	}
	return nil
}

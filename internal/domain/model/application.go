package model

import "time"

// errUpdateEmpty is shared by update requests that arrived with no fields.
var errUpdateEmpty = newRequestError("at least one field must be updated")

// ApplicationType distinguishes the two public intake forms.
type ApplicationType string

const (
	ApplicationTypeScholarship ApplicationType = "scholarship"
	ApplicationTypeMembership  ApplicationType = "membership"
)

func (t ApplicationType) Valid() bool {
	switch t {
	case ApplicationTypeScholarship, ApplicationTypeMembership:
		return true
	default:
		return false
	}
}

// ApplicationStatus tracks the review lifecycle of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// Application is a scholarship or membership application submitted through
// the public site.
type Application struct {
	ID        string            `json:"id"         db:"id"`
	Type      ApplicationType   `json:"type"       db:"type"`
	Status    ApplicationStatus `json:"status"     db:"status"`
	FullName  string            `json:"full_name"  db:"full_name"`
	Email     string            `json:"email"      db:"email"`
	Phone     string            `json:"phone"      db:"phone"`
	City      string            `json:"city"       db:"city"`
	Message   *string           `json:"message,omitempty" db:"message"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// CreateApplicationRequest is the public intake payload.
type CreateApplicationRequest struct {
	Type     ApplicationType `json:"type"              validate:"required"`
	FullName string          `json:"full_name"         validate:"required,max=160"`
	Email    string          `json:"email"             validate:"required,email"`
	Phone    string          `json:"phone"             validate:"required,max=32"`
	City     string          `json:"city"              validate:"required,max=80"`
	Message  *string         `json:"message,omitempty" validate:"omitempty,max=4000"`
}

func (r *CreateApplicationRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !r.Type.Valid() {
		return newRequestError("invalid application type %q", r.Type)
	}
	return nil
}

// UpdateApplicationStatusRequest moves an application through review.
type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required"`
}

func (r *UpdateApplicationStatusRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !r.Status.Valid() {
		return newRequestError("invalid application status %q", r.Status)
	}
	return nil
}

// ApplicationListOptions holds list filters and pagination.
type ApplicationListOptions struct {
	Type   *ApplicationType   `json:"type,omitempty"`
	Status *ApplicationStatus `json:"status,omitempty"`
	Limit  int                `json:"limit,omitempty"`
	Offset int                `json:"offset,omitempty"`
}

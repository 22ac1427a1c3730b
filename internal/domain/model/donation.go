package model

import "time"

// Donation records a donation intent submitted through the public site.
// Amounts are stored in kuruş to avoid floating-point money.
type Donation struct {
	ID          string    `json:"id"           db:"id"`
	DonorName   string    `json:"donor_name"   db:"donor_name"`
	Email       string    `json:"email"        db:"email"`
	AmountKurus int64     `json:"amount_kurus" db:"amount_kurus"`
	Currency    string    `json:"currency"     db:"currency"`
	Note        *string   `json:"note,omitempty" db:"note"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}

// CreateDonationRequest is the public donation intent payload.
type CreateDonationRequest struct {
	DonorName   string  `json:"donor_name"   validate:"required,max=160"`
	Email       string  `json:"email"        validate:"required,email"`
	AmountKurus int64   `json:"amount_kurus" validate:"required,gt=0"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateDonationRequest) Validate() error {
	return validateStruct(r)
}

// DonationListOptions holds pagination for donation listings.
type DonationListOptions struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

package model

import "time"

// Announcement is a short public notice from the association.
type Announcement struct {
	ID        string    `json:"id"         db:"id"`
	Title     string    `json:"title"      db:"title"`
	Body      string    `json:"body"       db:"body"`
	Published bool      `json:"published"  db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateAnnouncementRequest holds fields for creating an announcement.
type CreateAnnouncementRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Body      string `json:"body"  validate:"required,max=8000"`
	Published *bool  `json:"published,omitempty"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	return validateStruct(r)
}

// UpdateAnnouncementRequest holds optional fields for updating an announcement.
type UpdateAnnouncementRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Body      *string `json:"body,omitempty"  validate:"omitempty,max=8000"`
	Published *bool   `json:"published,omitempty"`
}

func (r *UpdateAnnouncementRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Title == nil && r.Body == nil && r.Published == nil {
		return errUpdateEmpty
	}
	return nil
}

// AnnouncementListOptions holds list filters and pagination.
type AnnouncementListOptions struct {
	Published *bool `json:"published,omitempty"`
	Limit     int   `json:"limit,omitempty"`
	Offset    int   `json:"offset,omitempty"`
}

package model

import (
	"regexp"
	"time"
)

var errInvalidSlug = newRequestError("slug must contain only lowercase letters, digits, and hyphens")

// validateSlugAndRange checks the slug shape and that an end time, when set,
// does not precede the start time.
func validateSlugAndRange(slug string, startsAt time.Time, endsAt *time.Time) error {
	if !slugRe.MatchString(slug) {
		return errInvalidSlug
	}
	if endsAt != nil && endsAt.Before(startsAt) {
		return newRequestError("ends_at must not precede starts_at")
	}
	return nil
}

// slugRe matches URL-safe slugs: lowercase alphanumerics separated by single hyphens.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Event is an association event (fundraiser, meetup, ceremony) shown on the
// public site when published.
type Event struct {
	ID        string     `json:"id"         db:"id"`
	Title     string     `json:"title"      db:"title"`
	Slug      string     `json:"slug"       db:"slug"`
	Summary   string     `json:"summary"    db:"summary"`
	Body      string     `json:"body"       db:"body"`
	Location  string     `json:"location"   db:"location"`
	StartsAt  time.Time  `json:"starts_at"  db:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	Published bool       `json:"published"  db:"published"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateEventRequest holds fields for creating an event.
type CreateEventRequest struct {
	Title     string     `json:"title"    validate:"required,max=200"`
	Slug      string     `json:"slug"     validate:"required,max=200"`
	Summary   string     `json:"summary"  validate:"required,max=500"`
	Body      string     `json:"body"     validate:"required"`
	Location  string     `json:"location" validate:"required,max=200"`
	StartsAt  time.Time  `json:"starts_at" validate:"required"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Published *bool      `json:"published,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return validateSlugAndRange(r.Slug, r.StartsAt, r.EndsAt)
}

// UpdateEventRequest holds optional fields for updating an event.
type UpdateEventRequest struct {
	Title     *string    `json:"title,omitempty"    validate:"omitempty,max=200"`
	Slug      *string    `json:"slug,omitempty"     validate:"omitempty,max=200"`
	Summary   *string    `json:"summary,omitempty"  validate:"omitempty,max=500"`
	Body      *string    `json:"body,omitempty"`
	Location  *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Published *bool      `json:"published,omitempty"`
}

func (r *UpdateEventRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Slug != nil && !slugRe.MatchString(*r.Slug) {
		return errInvalidSlug
	}
	if r.Title == nil && r.Slug == nil && r.Summary == nil && r.Body == nil &&
		r.Location == nil && r.StartsAt == nil && r.EndsAt == nil && r.Published == nil {
		return errUpdateEmpty
	}
	return nil
}

// EventListOptions holds list filters and pagination.
type EventListOptions struct {
	Published *bool `json:"published,omitempty"`
	// Upcoming filters to events starting at or after the current time.
	Upcoming bool `json:"upcoming,omitempty"`
	Limit    int  `json:"limit,omitempty"`
	Offset   int  `json:"offset,omitempty"`
}

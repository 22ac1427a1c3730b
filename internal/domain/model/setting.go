package model

import (
	"encoding/json"
	"time"
)

var errInvalidSettingValue = newRequestError("value must be a valid JSON document")

// Setting is one key of the site content/configuration store. Values are
// free-form JSON documents (content blocks, contact info, social links).
// Public settings are exposed through the unauthenticated settings endpoint.
type Setting struct {
	Key       string          `json:"key"        db:"key"`
	Value     json.RawMessage `json:"value"      db:"value"`
	Public    bool            `json:"public"     db:"public"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// UpsertSettingRequest creates or replaces a setting document.
type UpsertSettingRequest struct {
	Value  json.RawMessage `json:"value"  validate:"required"`
	Public *bool           `json:"public,omitempty"`
}

func (r *UpsertSettingRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !json.Valid(r.Value) {
		return errInvalidSettingValue
	}
	return nil
}

//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request structs. validator
// instances cache struct metadata, so a single package-level instance is the
// intended usage.
var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // validator caches struct metadata

// validateStruct runs tag-based validation and wraps failures so callers can
// classify them with errors.As(validator.ValidationErrors).
func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("validation failed: %w", verrs)
		}
		return err
	}
	return nil
}

// requestError marks hand-rolled request validation failures (value-set
// checks the validator tags cannot express) so the HTTP layer classifies
// them as 400s alongside tag failures.
type requestError struct{ msg string }

func (e requestError) Error() string { return e.msg }

func newRequestError(format string, args ...any) error {
	return requestError{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err originated from request validation.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}
	var reqErr requestError
	return errors.As(err, &reqErr)
}

package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Fields lists the wire names of the fields that failed validation, in
// declaration order. Nil when err carries no field-level detail.
func Fields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldError.Field())
	}
	return fields
}

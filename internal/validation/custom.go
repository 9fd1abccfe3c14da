package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Deliberately loose local@domain.tld shape. The acknowledgement email is the
// real deliverability check; this only catches obvious typos at the form.
var quoteEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func quoteEmailValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return quoteEmailRegex.MatchString(val)
}

package authform

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern accepts local@domain with a dotted domain ending in a two or
// more letter label, a bracketed IPv4 domain, or a quoted local part.
var emailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// EmailTag is the validator tag registered for storefront email addresses.
const EmailTag = "passemail"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := registerEmailValidation(v); err != nil {
		panic(err)
	}
	return v
}

// registerEmailValidation adds the EmailTag rule to v.
func registerEmailValidation(v *validator.Validate) error {
	return v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.ToLower(fl.Field().String()))
	})
}

// ValidEmail reports whether s is an acceptable email address.
func ValidEmail(s string) bool {
	return validate.Var(s, EmailTag) == nil
}

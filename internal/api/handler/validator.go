package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/gatepay/merchant-onboarding/internal/core/validation"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// It shares the tag set of the registration wizard.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.New()}
}

// Validate satisfies the echo.Validator interface. Validation errors are
// returned unflattened; the error handler renders them field by field.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}

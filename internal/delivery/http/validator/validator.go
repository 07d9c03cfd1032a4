// Package validator wires go-playground/validator into Echo so request DTOs
// are checked against their struct tags at bind time.
package validator

import (
	domainerrors "passage/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the validator used by the HTTP server.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate checks the struct tags on i and maps failures to the shared
// validation error so the error middleware renders them consistently.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

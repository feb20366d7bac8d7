// Package validator adapts go-playground validation to echo's Validator hook.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "helios/internal/domain/errors"
)

// echoValidator wraps a go-playground validator instance.
type echoValidator struct {
	validate *playground.Validate
}

// New creates the validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Failures map onto the shared
// validation error so the error middleware renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}

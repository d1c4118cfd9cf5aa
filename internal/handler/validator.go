package handler

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground validation into echo.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds the validator used by all handlers.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags on the bound request payload.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

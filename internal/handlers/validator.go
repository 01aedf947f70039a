package handlers

import (
	"starbank/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator over the shared validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates an echo validator carrying the domain rules
// (account_number, currency, positive_amount, percent)
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator().GetValidate()}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

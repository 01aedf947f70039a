package validation

import (
	"reflect"
	"regexp"
	"strings"

	"starbank/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("percent", validatePercent)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

var accountNumberRegex = regexp.MustCompile(`^\d{20}$`)

// validateAccountNumber validates that an account number is exactly 20 digits
func validateAccountNumber(fl validator.FieldLevel) bool {
	return accountNumberRegex.MatchString(fl.Field().String())
}

// validateCurrency validates that a currency is one of the allowed codes
func validateCurrency(fl validator.FieldLevel) bool {
	return models.IsValidCurrency(fl.Field().String())
}

// validatePositiveAmount validates that an amount is greater than 0.
// Supports integers, floats and decimal.Decimal fields.
func validatePositiveAmount(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
		return d.GreaterThan(decimal.Zero)
	}

	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > 0
	default:
		return false
	}
}

// validatePercent validates that a percent is within [0,100]
func validatePercent(fl validator.FieldLevel) bool {
	percent := fl.Field().Int()
	return percent >= 0 && percent <= 100
}

package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator provides a fluent interface for validating configuration values.
// It collects all validation errors rather than failing on the first one.
type ConfigValidator struct {
	errors []error
	name   string // config name for error messages
}

// NewConfigValidator creates a new config validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// Required validates that a string field is not empty.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required field is empty", cv.name, field))
	}
	return cv
}

// MinInt validates that an int field is at least the minimum value.
func (cv *ConfigValidator) MinInt(field string, value, min int) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d is below minimum %d", cv.name, field, value, min))
	}
	return cv
}

// Positive validates that an int field is positive (> 0).
func (cv *ConfigValidator) Positive(field string, value int) *ConfigValidator {
	if value <= 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d must be positive", cv.name, field, value))
	}
	return cv
}

// GreaterThan validates that one int field exceeds another.
func (cv *ConfigValidator) GreaterThan(field string, value int, other string, otherValue int) *ConfigValidator {
	if value <= otherValue {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d must be greater than %s (%d)", cv.name, field, value, other, otherValue))
	}
	return cv
}

// Alphabet validates an alphabet string with ValidateAlphabet.
func (cv *ConfigValidator) Alphabet(field, value string) *ConfigValidator {
	return cv.Custom(field, func() error { return ValidateAlphabet(value) })
}

// Cycles validates cycle notation with ValidateCycleSyntax.
func (cv *ConfigValidator) Cycles(field, value string) *ConfigValidator {
	return cv.Custom(field, func() error { return ValidateCycleSyntax(value) })
}

// Custom applies a custom validation function.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
	}
	return cv
}

// When conditionally applies validations if the condition is true.
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// HasErrors returns true if any validation errors occurred.
func (cv *ConfigValidator) HasErrors() bool {
	return len(cv.errors) > 0
}

// Errors returns all validation errors.
func (cv *ConfigValidator) Errors() []error {
	return cv.errors
}

// Validate returns a combined error if any validations failed. The result
// wraps ErrInvalid and every collected error.
func (cv *ConfigValidator) Validate() error {
	switch len(cv.errors) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%w: %w", ErrInvalid, cv.errors[0])
	default:
		return fmt.Errorf("%w: %s has %d errors: %w", ErrInvalid, cv.name, len(cv.errors), errors.Join(cv.errors...))
	}
}

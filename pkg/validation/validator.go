package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// ErrInvalid is wrapped by every error returned from Struct.
	ErrInvalid = errors.New("validation failed")

	// ReservedSymbols may not appear in an alphabet; they carry meaning in
	// configuration files and setting lines.
	ReservedSymbols = "*()"
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their yaml names so messages match the input file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister("alphabet", func(fl validator.FieldLevel) bool {
		return ValidateAlphabet(fl.Field().String()) == nil
	})
	mustRegister("cycles", func(fl validator.FieldLevel) bool {
		return ValidateCycleSyntax(fl.Field().String()) == nil
	})
	mustRegister("rotorkind", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "m", "moving", "n", "fixed", "r", "reflector":
			return true
		}
		return false
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct validates v using its `validate` struct tags.
func Struct(v any) error {
	if v == nil {
		return fmt.Errorf("%w: value cannot be nil", ErrInvalid)
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateAlphabet checks the symbols a configuration may hand to the engine:
// non-empty, no whitespace, no reserved symbol and no repeats.
func ValidateAlphabet(s string) error {
	if s == "" {
		return errors.New("alphabet is empty")
	}
	seen := make(map[rune]bool, len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return errors.New("alphabet contains whitespace")
		case strings.ContainsRune(ReservedSymbols, r):
			return fmt.Errorf("alphabet contains reserved symbol %q", r)
		case seen[r]:
			return fmt.Errorf("alphabet repeats %q", r)
		}
		seen[r] = true
	}
	return nil
}

// ValidateCycleSyntax performs a shallow check of cycle notation: balanced,
// non-nested parentheses with nothing but whitespace between cycles. Symbol
// membership is checked later against the alphabet.
func ValidateCycleSyntax(s string) error {
	open := false
	for _, r := range s {
		switch {
		case r == '(':
			if open {
				return errors.New("nested '('")
			}
			open = true
		case r == ')':
			if !open {
				return errors.New("unmatched ')'")
			}
			open = false
		case !open && !unicode.IsSpace(r):
			return fmt.Errorf("%q outside a cycle", r)
		case open && unicode.IsSpace(r):
			return errors.New("whitespace inside a cycle")
		}
	}
	if open {
		return errors.New("unterminated cycle")
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s: field is required", ErrInvalid, field)
		case "min":
			return fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, field, param)
		case "max":
			return fmt.Errorf("%w: %s: must not exceed %s", ErrInvalid, field, param)
		case "gtfield":
			return fmt.Errorf("%w: %s: must be greater than %s", ErrInvalid, field, strings.ToLower(param))
		case "alphabet":
			return fmt.Errorf("%w: %s: %v", ErrInvalid, field, ValidateAlphabet(e.Value().(string)))
		case "cycles":
			return fmt.Errorf("%w: %s: %v", ErrInvalid, field, ValidateCycleSyntax(e.Value().(string)))
		case "rotorkind":
			return fmt.Errorf("%w: %s: %q is not a rotor kind (moving, fixed, reflector)", ErrInvalid, field, e.Value())
		default:
			return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag())
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

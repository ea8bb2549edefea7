package enigma

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure the engine reports.
var (
	ErrDuplicateSymbol      = errors.New("duplicate symbol")
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrMalformedCycle       = errors.New("malformed cycle")
	ErrUnknownRotor         = errors.New("unknown rotor")
	ErrConfigurationInvalid = errors.New("invalid configuration")
	ErrNotConfigured        = errors.New("machine has no rotors inserted")
)

// Error provides structured error information for engine operations.
type Error struct {
	Op      string // Operation that failed (e.g., "NewAlphabet", "InsertRotors")
	Subject string // Offending symbol, rotor name or input (if applicable)
	Detail  string // Additional context
	Cause   error  // Underlying sentinel
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Subject != "" && e.Detail != "":
		return fmt.Sprintf("%s %q: %v (%s)", e.Op, e.Subject, e.Cause, e.Detail)
	case e.Subject != "":
		return fmt.Sprintf("%s %q: %v", e.Op, e.Subject, e.Cause)
	case e.Detail != "":
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Cause, e.Detail)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// errorBuilder provides a fluent interface for building Errors.
type errorBuilder struct {
	err Error
}

func newError(op string) *errorBuilder {
	return &errorBuilder{err: Error{Op: op}}
}

func (b *errorBuilder) subject(s string) *errorBuilder {
	b.err.Subject = s
	return b
}

func (b *errorBuilder) symbol(r rune) *errorBuilder {
	b.err.Subject = string(r)
	return b
}

func (b *errorBuilder) detail(format string, args ...any) *errorBuilder {
	b.err.Detail = fmt.Sprintf(format, args...)
	return b
}

func (b *errorBuilder) cause(err error) error {
	b.err.Cause = err
	return &b.err
}

// KindOf returns a stable label for the sentinel behind err, suitable for
// metric labels. Errors that do not come from the engine map to "unknown".
func KindOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrDuplicateSymbol):
		return "duplicate_symbol"
	case errors.Is(err, ErrInvalidSymbol):
		return "invalid_symbol"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrMalformedCycle):
		return "malformed_cycle"
	case errors.Is(err, ErrUnknownRotor):
		return "unknown_rotor"
	case errors.Is(err, ErrConfigurationInvalid):
		return "configuration_invalid"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	default:
		return "unknown"
	}
}

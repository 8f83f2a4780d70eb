package bcrypt

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps one of these, so
// callers can branch with errors.Is.
var (
	ErrInvalidSalt        = errors.New("bcrypt: invalid salt")
	ErrUnsupportedVersion = errors.New("bcrypt: unsupported version")
	ErrInvalidCost        = errors.New("bcrypt: invalid cost")
	ErrInvalidRounds      = errors.New("bcrypt: invalid rounds")
	ErrInvalidKeyLength   = errors.New("bcrypt: invalid key length")
	ErrEmbeddedNul        = errors.New("bcrypt: embedded nul byte not allowed")
	ErrEmptyPassword      = errors.New("bcrypt: empty password")
	ErrMalformedHash      = errors.New("bcrypt: malformed hash string")
	ErrInvalidEncoding    = errors.New("bcrypt: invalid radix-64 encoding")
)

// ValidationError represents a parameter validation error
type ValidationError struct {
	Field   string // The field or parameter that failed validation
	Value   any    // The invalid value
	Message string // Human-readable error message
	Err     error  // Error kind
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DecodeError represents a hash or salt string that could not be parsed.
// It unwraps to both Kind (ErrMalformedHash or ErrInvalidSalt) and the
// specific cause.
type DecodeError struct {
	Kind    error  // ErrMalformedHash or ErrInvalidSalt
	Offset  int    // Byte offset of the problem, -1 if not applicable
	Message string // Human-readable error message
	Err     error  // Specific cause, if any
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("decode error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil && e.Err != e.Kind {
		errs = append(errs, e.Err)
	}
	return errs
}

// Helper functions for creating structured errors

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string, kind error) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     kind,
	}
}

// newHashError reports a problem in a full hash string.
func newHashError(offset int, message string, cause error) error {
	return &DecodeError{
		Kind:    ErrMalformedHash,
		Offset:  offset,
		Message: message,
		Err:     cause,
	}
}

// newSaltError reports a problem in a salt string.
func newSaltError(offset int, message string, cause error) error {
	return &DecodeError{
		Kind:    ErrInvalidSalt,
		Offset:  offset,
		Message: message,
		Err:     cause,
	}
}

// Error checking helpers

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDecodeError checks if an error is a decode error
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

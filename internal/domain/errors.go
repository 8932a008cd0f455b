package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a missing or malformed field.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate marks a natural-key collision.
	ErrDuplicate = errors.New("already exists")
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a lookup for an entity that does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput reports input that fails domain validation.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError carries the failing field alongside the message, so
// handlers can report which part of the payload was bad.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

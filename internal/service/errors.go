package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a request cannot be processed as given,
	// for example an unparseable transcript.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested transcript does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

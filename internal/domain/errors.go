package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrParse         = errors.New("parse error")
	ErrConnection    = errors.New("connection error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// Entity names the record kind that failed ("season", "episode", ...).
type ValidationError struct {
	Entity string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	prefix := "validation"
	if e.Entity != "" {
		prefix = "validation: " + e.Entity
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %s — %s", prefix, e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("%s: %d errors", prefix, len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ParseError reports a malformed field in a source row.
// Line is 1-based and counts the header row.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("parse: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse: line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

// Unwrap exposes both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

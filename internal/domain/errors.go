package domain

import (
	"errors"
	"fmt"
)

// Common domain errors. These are client errors: they indicate malformed
// input, never a backend failure, and are safe to surface unretried.
var (
	// ErrUnknownCondition indicates a condition tag outside the closed
	// set of four experimental arms.
	ErrUnknownCondition = errors.New("unknown condition")

	// ErrAnswerCount indicates an answer vector whose length does not
	// match the questionnaire.
	ErrAnswerCount = errors.New("invalid answer count")

	// ErrAnswerRange indicates an answer outside the Likert 1..5 range.
	ErrAnswerRange = errors.New("answer out of range")
)

// ValidationError aggregates one or more validation failures for a
// single entity.
type ValidationError struct {
	// Entity names what failed validation.
	Entity string

	// Errors lists the individual failure messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError appends a failure message.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors reports whether any failures were recorded.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates an empty ValidationError for an entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{Entity: entity, Errors: make([]string, 0)}
}

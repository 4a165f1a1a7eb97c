package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the listing domain. Use errors.Is() to check these.
var (
	// ErrListingNotFound indicates the requested listing does not exist.
	ErrListingNotFound = errors.New("listing not found")

	// ErrInvalidSubmission indicates a submission failed validation.
	// The concrete *ValidationError carries the failing field.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrNotAuthorized indicates the caller lacks moderator rights.
	// Surfaced as a generic denial; the reason never leaks to the caller.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidTransition indicates a moderation action that is not legal
	// from the listing's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports the first submission check that failed.
// It matches ErrInvalidSubmission under errors.Is.
type ValidationError struct {
	Field  string // JSON field name of the failing input
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSubmission
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

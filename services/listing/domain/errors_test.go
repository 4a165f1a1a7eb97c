package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_UnwrapsToInvalidSubmission(t *testing.T) {
	err := NewValidationError("username", "username is required")

	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatal("expected errors.Is(err, ErrInvalidSubmission)")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected errors.As to recover *ValidationError")
	}
	if ve.Field != "username" {
		t.Errorf("expected field username, got %q", ve.Field)
	}
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError("capes", "unknown cape Dragon"))

	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatal("wrapped validation error must still match ErrInvalidSubmission")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "capes" {
		t.Fatalf("expected capes field through the wrap, got %+v", ve)
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrListingNotFound, ErrInvalidSubmission, ErrNotAuthorized, ErrInvalidTransition}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}

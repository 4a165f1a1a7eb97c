package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	listingdomain "github.com/hellohellohell0/mcmarket/services/listing/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrListingNotFound", listingdomain.ErrListingNotFound, http.StatusNotFound},
		{"ErrInvalidSubmission", listingdomain.ErrInvalidSubmission, http.StatusUnprocessableEntity},
		{"ErrNotAuthorized", listingdomain.ErrNotAuthorized, http.StatusUnauthorized},
		{"ErrInvalidTransition", listingdomain.ErrInvalidTransition, http.StatusConflict},
		{"wrapped ErrListingNotFound", fmt.Errorf("get listing: %w", listingdomain.ErrListingNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidTransition", fmt.Errorf("%w: REJECTED to PENDING", listingdomain.ErrInvalidTransition), http.StatusConflict},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_ValidationErrorIncludesField(t *testing.T) {
	err := listingdomain.NewValidationError("username", "Please enter the account's username.")

	w := httptest.NewRecorder()
	WriteError(w, err)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["field"] != "username" {
		t.Errorf("expected field %q, got %q", "username", body["field"])
	}
	if body["error"] != "Please enter the account's username." {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestWriteError_WrappedValidationError(t *testing.T) {
	err := fmt.Errorf("submit: %w", listingdomain.NewValidationError("name_changes", "Please enter the number of name changes."))

	w := httptest.NewRecorder()
	WriteError(w, err)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["field"] != "name_changes" {
		t.Errorf("expected field %q, got %q", "name_changes", body["field"])
	}
}

func TestWriteError_UnauthorizedIsGeneric(t *testing.T) {
	// Authorization failures must never leak why they failed.
	err := fmt.Errorf("approve listing: %w", listingdomain.ErrNotAuthorized)

	w := httptest.NewRecorder()
	WriteError(w, err)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "authentication required" {
		t.Errorf("expected generic denial, got %q", body["error"])
	}
}

func TestWriteError_InternalErrorHidesDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: connection refused on 10.0.0.3"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("internal detail leaked: %q", body["error"])
	}
}

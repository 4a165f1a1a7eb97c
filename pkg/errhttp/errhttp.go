// Package errhttp maps listing domain errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	listingdomain "github.com/hellohellohell0/mcmarket/services/listing/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
//
// Validation failures include the failing field; authorization failures are a
// fixed generic denial; everything unrecognized is a 500 with no detail.
func WriteError(w http.ResponseWriter, err error) {
	var ve *listingdomain.ValidationError
	if errors.As(err, &ve) {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": ve.Reason,
			"field": ve.Field,
		})
		return
	}

	status := mapErrorToStatus(err)
	msg := err.Error()
	switch status {
	case http.StatusUnauthorized:
		msg = "authentication required"
	case http.StatusInternalServerError:
		msg = http.StatusText(http.StatusInternalServerError)
	}
	httpx.JSONError(w, status, msg)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, listingdomain.ErrListingNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, listingdomain.ErrInvalidSubmission):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, listingdomain.ErrNotAuthorized):
		return http.StatusUnauthorized // 401
	case errors.Is(err, listingdomain.ErrInvalidTransition):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}

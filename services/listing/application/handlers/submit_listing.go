package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/pkg/errhttp"
	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	pkgvalidator "github.com/hellohellohell0/mcmarket/pkg/validator"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
	domainsvcs "github.com/hellohellohell0/mcmarket/services/listing/domain/services"
)

// SubmitListingRequest is the request body for POST /listings.
// Field-level semantics (ordering, zero-offer normalization, the
// at-least-one-contact rule) are enforced by the domain validator; the tags
// here only reject structurally hopeless payloads early.
type SubmitListingRequest struct {
	Username          string   `json:"username" validate:"max=64" example:"Alice"`
	Description       string   `json:"description" validate:"max=4000"`
	PriceBin          *float64 `json:"price_bin" example:"100"`
	PriceCurrentOffer *float64 `json:"price_current_offer" example:"0"`
	Currency          string   `json:"currency" validate:"omitempty,oneof=USD EUR GBP CAD" example:"USD"`
	AccountTypes      []string `json:"account_types" example:"OG"`
	Capes             []string `json:"capes"`
	NameChanges       *int     `json:"name_changes" example:"0"`
	OGUProfileURL     string   `json:"ogu_profile_url" validate:"omitempty,url"`
	ContactDiscord    string   `json:"contact_discord" validate:"max=64"`
	ContactTelegram   string   `json:"contact_telegram" validate:"max=64"`
	TicketNumber      string   `json:"ticket_number" validate:"max=64"`
} // @name SubmitListingRequest

// SubmitListingResponse is returned on successful submission.
type SubmitListingResponse struct {
	ListingID uuid.UUID `json:"listing_id"`
	Message   string    `json:"message"`
} // @name SubmitListingResponse

// SubmitListingHandler handles POST /listings requests.
type SubmitListingHandler struct {
	svc *appsvcs.Services
}

// NewSubmitListingHandler returns a SubmitListingHandler backed by the given services.
func NewSubmitListingHandler(svc *appsvcs.Services) *SubmitListingHandler {
	return &SubmitListingHandler{svc: svc}
}

// Execute submits a new listing for moderation.
//
//	@Summary		Submit listing
//	@Description	Submits an account listing; it becomes publicly visible once a moderator approves it
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SubmitListingRequest	true	"Listing submission"
//	@Success		201		{object}	SubmitListingResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/listings [post]
func (h *SubmitListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SubmitListingRequest](w, r)
	if !ok {
		return
	}

	l, err := h.svc.Listing.Submit(r.Context(), domainsvcs.RawSubmission{
		Username:          req.Username,
		Description:       req.Description,
		PriceBin:          req.PriceBin,
		PriceCurrentOffer: req.PriceCurrentOffer,
		Currency:          req.Currency,
		AccountTypes:      req.AccountTypes,
		Capes:             req.Capes,
		NameChanges:       req.NameChanges,
		OGUProfileURL:     req.OGUProfileURL,
		ContactDiscord:    req.ContactDiscord,
		ContactTelegram:   req.ContactTelegram,
		TicketNumber:      req.TicketNumber,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, SubmitListingResponse{
		ListingID: l.ID,
		Message: fmt.Sprintf(
			"Account %s has been sent for approval! We will contact you via your ticket once it gets accepted.",
			l.Username),
	})
}

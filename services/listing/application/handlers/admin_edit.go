package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/pkg/errhttp"
	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	pkgvalidator "github.com/hellohellohell0/mcmarket/pkg/validator"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
)

// EditListingRequest is the request body for PATCH /admin/listings/{id}.
// Absent fields leave the stored value untouched; a present capes array
// replaces the cape set wholesale.
type EditListingRequest struct {
	Username         *string  `json:"username" validate:"omitempty,max=64"`
	Description      *string  `json:"description" validate:"omitempty,max=4000"`
	Currency         *string  `json:"currency" validate:"omitempty,oneof=USD EUR GBP CAD"`
	AccountTypes     []string `json:"account_types"`
	Capes            []string `json:"capes"`
	NameChanges      *int     `json:"name_changes"`
	TicketNumber     *string  `json:"ticket_number" validate:"omitempty,max=64"`
	OwnerVerified    *bool    `json:"owner_verified"`
	IdentityVerified *bool    `json:"identity_verified"`
} // @name EditListingRequest

// EditListingHandler handles PATCH /admin/listings/{id} requests.
type EditListingHandler struct {
	svc *appsvcs.Services
}

// NewEditListingHandler returns an EditListingHandler backed by the given services.
func NewEditListingHandler(svc *appsvcs.Services) *EditListingHandler {
	return &EditListingHandler{svc: svc}
}

// Execute applies a partial field edit to a listing.
//
//	@Summary		Edit listing fields
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string				true	"listing id"
//	@Param			request	body	EditListingRequest	true	"fields to change"
//	@Success		200	{object}	AdminListingResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/admin/listings/{id} [patch]
func (h *EditListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[EditListingRequest](w, r)
	if !ok {
		return
	}

	l, err := h.svc.Listing.EditFields(r.Context(), id, appsvcs.FieldEdit{
		Username:         req.Username,
		Description:      req.Description,
		Currency:         req.Currency,
		AccountTypes:     req.AccountTypes,
		Capes:            req.Capes,
		NameChanges:      req.NameChanges,
		TicketNumber:     req.TicketNumber,
		OwnerVerified:    req.OwnerVerified,
		IdentityVerified: req.IdentityVerified,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAdminListingResponse(l))
}

// EditPriceRequest is the request body for PUT /admin/listings/{id}/price.
// A zero current offer means "no offer" and is stored as null.
type EditPriceRequest struct {
	PriceCurrentOffer *float64 `json:"price_current_offer"`
	PriceBin          *float64 `json:"price_bin"`
} // @name EditPriceRequest

// EditPriceHandler handles PUT /admin/listings/{id}/price requests.
type EditPriceHandler struct {
	svc *appsvcs.Services
}

// NewEditPriceHandler returns an EditPriceHandler backed by the given services.
func NewEditPriceHandler(svc *appsvcs.Services) *EditPriceHandler {
	return &EditPriceHandler{svc: svc}
}

// Execute overwrites a listing's prices.
//
//	@Summary		Edit listing prices
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"listing id"
//	@Param			request	body	EditPriceRequest	true	"new prices"
//	@Success		200	{object}	AdminListingResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/admin/listings/{id}/price [put]
func (h *EditPriceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[EditPriceRequest](w, r)
	if !ok {
		return
	}

	l, err := h.svc.Listing.EditPrice(r.Context(), id, req.PriceCurrentOffer, req.PriceBin)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAdminListingResponse(l))
}

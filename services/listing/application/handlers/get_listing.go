package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/pkg/currency"
	"github.com/hellohellohell0/mcmarket/pkg/errhttp"
	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// GetListingHandler handles GET /listings/{id} requests.
type GetListingHandler struct {
	svc *appsvcs.Services
}

// NewGetListingHandler returns a GetListingHandler backed by the given services.
func NewGetListingHandler(svc *appsvcs.Services) *GetListingHandler {
	return &GetListingHandler{svc: svc}
}

// Execute fetches a single listing in the redacted public view. An optional
// currency query parameter converts the displayed prices.
//
//	@Summary		Fetch listing
//	@Description	Returns one listing with its cape set; contact details are redacted to a derived public-contact string
//	@Tags			listings
//	@Produce		json
//	@Param			id			path	string	true	"listing id"
//	@Param			currency	query	string	false	"display currency (USD, EUR, GBP, CAD)"
//	@Success		200	{object}	ListingResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/listings/{id} [get]
func (h *GetListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	l, err := h.svc.Listing.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := toListingResponse(l)
	if raw := r.URL.Query().Get("currency"); raw != "" {
		display, err := models.ParseCurrencyCode(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if resp.PriceCurrentOffer, err = currency.ConvertPtr(l.PriceCurrentOffer, l.Currency, display); err != nil {
			errhttp.WriteError(w, err)
			return
		}
		if resp.PriceBin, err = currency.ConvertPtr(l.PriceBin, l.Currency, display); err != nil {
			errhttp.WriteError(w, err)
			return
		}
		resp.Currency = display.String()
	}

	httpx.JSON(w, http.StatusOK, resp)
}

package handlers

import (
	"net/http"

	"github.com/hellohellohell0/mcmarket/pkg/errhttp"
	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	pkgvalidator "github.com/hellohellohell0/mcmarket/pkg/validator"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
	domainsvcs "github.com/hellohellohell0/mcmarket/services/listing/domain/services"
)

// AdminListListingsResponse is the moderation dashboard result set.
type AdminListListingsResponse struct {
	Listings []AdminListingResponse `json:"listings"`
} // @name AdminListListingsResponse

// AdminListListingsHandler handles GET /admin/listings requests.
type AdminListListingsHandler struct {
	svc *appsvcs.Services
}

// NewAdminListListingsHandler returns an AdminListListingsHandler backed by the given services.
func NewAdminListListingsHandler(svc *appsvcs.Services) *AdminListListingsHandler {
	return &AdminListListingsHandler{svc: svc}
}

// Execute lists listings for moderation, optionally narrowed by status.
//
//	@Summary		List listings (moderation)
//	@Tags			admin
//	@Produce		json
//	@Param			status	query	string	false	"PENDING | APPROVED | REJECTED"
//	@Success		200	{object}	AdminListListingsResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/admin/listings [get]
func (h *AdminListListingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var status *models.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s, err := models.ParseStatus(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = &s
	}

	listings, err := h.svc.Listing.ListByStatus(r.Context(), status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AdminListListingsResponse{Listings: toAdminListingResponses(listings)})
}

// AdminCreateListingHandler handles POST /admin/listings requests.
type AdminCreateListingHandler struct {
	svc *appsvcs.Services
}

// NewAdminCreateListingHandler returns an AdminCreateListingHandler backed by the given services.
func NewAdminCreateListingHandler(svc *appsvcs.Services) *AdminCreateListingHandler {
	return &AdminCreateListingHandler{svc: svc}
}

// Execute creates a moderator-authored listing directly in APPROVED status.
// The buy-it-now price and ticket reference are optional in this flow.
//
//	@Summary		Create listing (moderation)
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SubmitListingRequest	true	"Listing fields"
//	@Success		201		{object}	AdminListingResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/admin/listings [post]
func (h *AdminCreateListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SubmitListingRequest](w, r)
	if !ok {
		return
	}

	l, err := h.svc.Listing.CreateApproved(r.Context(), domainsvcs.RawSubmission{
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

	httpx.JSON(w, http.StatusCreated, toAdminListingResponse(l))
}

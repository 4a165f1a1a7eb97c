package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/pkg/errhttp"
	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// ModerateListingHandler handles the approve and reject moderation actions.
// Both run the same state machine; only the target status differs.
type ModerateListingHandler struct {
	svc    *appsvcs.Services
	target models.Status
}

// NewApproveListingHandler returns the POST /admin/listings/{id}/approve handler.
func NewApproveListingHandler(svc *appsvcs.Services) *ModerateListingHandler {
	return &ModerateListingHandler{svc: svc, target: models.StatusApproved}
}

// NewRejectListingHandler returns the POST /admin/listings/{id}/reject handler.
func NewRejectListingHandler(svc *appsvcs.Services) *ModerateListingHandler {
	return &ModerateListingHandler{svc: svc, target: models.StatusRejected}
}

// Execute applies the moderation transition.
//
//	@Summary		Approve or reject a listing
//	@Tags			admin
//	@Produce		json
//	@Param			id	path	string	true	"listing id"
//	@Success		200	{object}	AdminListingResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/admin/listings/{id}/approve [post]
func (h *ModerateListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	var l *models.Listing
	if h.target == models.StatusApproved {
		l, err = h.svc.Listing.Approve(r.Context(), id)
	} else {
		l, err = h.svc.Listing.Reject(r.Context(), id)
	}
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAdminListingResponse(l))
}

// DeleteListingHandler handles DELETE /admin/listings/{id} requests.
type DeleteListingHandler struct {
	svc *appsvcs.Services
}

// NewDeleteListingHandler returns a DeleteListingHandler backed by the given services.
func NewDeleteListingHandler(svc *appsvcs.Services) *DeleteListingHandler {
	return &DeleteListingHandler{svc: svc}
}

// Execute deletes a listing and its capes.
//
//	@Summary		Delete listing
//	@Tags			admin
//	@Param			id	path	string	true	"listing id"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/admin/listings/{id} [delete]
func (h *DeleteListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	if err := h.svc.Listing.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurgePendingResponse reports the ids removed by a pending purge.
type PurgePendingResponse struct {
	DeletedIDs []uuid.UUID `json:"deleted_ids"`
} // @name PurgePendingResponse

// PurgePendingHandler handles DELETE /admin/listings/pending requests.
type PurgePendingHandler struct {
	svc *appsvcs.Services
}

// NewPurgePendingHandler returns a PurgePendingHandler backed by the given services.
func NewPurgePendingHandler(svc *appsvcs.Services) *PurgePendingHandler {
	return &PurgePendingHandler{svc: svc}
}

// Execute bulk-deletes the N most recent pending submissions (spam cleanup).
//
//	@Summary		Purge recent pending submissions
//	@Tags			admin
//	@Produce		json
//	@Param			count	query	int	true	"number of submissions to remove"
//	@Success		200	{object}	PurgePendingResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/admin/listings/pending [delete]
func (h *PurgePendingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "count must be a positive integer")
		return
	}

	ids, err := h.svc.Listing.PurgeRecentPending(r.Context(), count)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, PurgePendingResponse{DeletedIDs: ids})
}

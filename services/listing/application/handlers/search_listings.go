package handlers

import (
	"net/http"
	"strconv"

	"github.com/hellohellohell0/mcmarket/pkg/errhttp"
	"github.com/hellohellohell0/mcmarket/pkg/httpx"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
	domainsvcs "github.com/hellohellohell0/mcmarket/services/listing/domain/services"
)

// SearchListingsResponse is the ordered result set for GET /listings.
type SearchListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
} // @name SearchListingsResponse

// SearchListingsHandler handles GET /listings requests.
type SearchListingsHandler struct {
	svc *appsvcs.Services
}

// NewSearchListingsHandler returns a SearchListingsHandler backed by the given services.
func NewSearchListingsHandler(svc *appsvcs.Services) *SearchListingsHandler {
	return &SearchListingsHandler{svc: svc}
}

// Execute searches the public catalog. Only APPROVED listings are ever
// returned regardless of the supplied criteria.
//
//	@Summary		Search listings
//	@Description	Filters and sorts the approved catalog
//	@Tags			listings
//	@Produce		json
//	@Param			username		query	string	false	"case-insensitive username substring"
//	@Param			minLen			query	int		false	"minimum username length"
//	@Param			maxLen			query	int		false	"maximum username length"
//	@Param			minPrice		query	number	false	"inclusive lower price bound"
//	@Param			maxPrice		query	number	false	"inclusive upper price bound"
//	@Param			maxNameChanges	query	int		false	"maximum name changes; 15 disables the bound"
//	@Param			accountType		query	[]string	false	"account types (any-of)"
//	@Param			capes			query	[]string	false	"cape names (any-of)"
//	@Param			sort			query	string	false	"newest | oldest | price_asc | price_desc"
//	@Success		200	{object}	SearchListingsResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/listings [get]
func (h *SearchListingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sortKey := domainsvcs.ParseSortKey(r.URL.Query().Get("sort"))

	listings, err := h.svc.Listing.Search(r.Context(), criteria, sortKey)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, SearchListingsResponse{Listings: toListingResponses(listings)})
}

func criteriaFromQuery(r *http.Request) (domainsvcs.Criteria, error) {
	q := r.URL.Query()
	c := domainsvcs.Criteria{
		UsernameContains: q.Get("username"),
		AccountTypes:     q["accountType"],
		Capes:            q["capes"],
	}

	var err error
	if c.MinLength, err = intParam(q.Get("minLen"), "minLen"); err != nil {
		return c, err
	}
	if c.MaxLength, err = intParam(q.Get("maxLen"), "maxLen"); err != nil {
		return c, err
	}
	if c.MaxNameChanges, err = intParam(q.Get("maxNameChanges"), "maxNameChanges"); err != nil {
		return c, err
	}
	if c.MinPrice, err = floatParam(q.Get("minPrice"), "minPrice"); err != nil {
		return c, err
	}
	if c.MaxPrice, err = floatParam(q.Get("maxPrice"), "maxPrice"); err != nil {
		return c, err
	}
	return c, nil
}

func intParam(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{name}
	}
	return &v, nil
}

func floatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &paramError{name}
	}
	return &v, nil
}

type paramError struct{ name string }

func (e *paramError) Error() string {
	return "invalid query parameter " + e.name
}

package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"authentication required"`
	Field string `json:"field,omitempty" example:"username"`
} // @name ErrorResponse

// ListingResponse is the public catalog view of a listing. Raw contact
// handles and the ticket reference are redacted down to a derived
// public-contact string.
type ListingResponse struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Description      string    `json:"description"`
	PriceCurrentOffer *float64 `json:"price_current_offer"`
	PriceBin         *float64  `json:"price_bin"`
	Currency         string    `json:"currency"`
	AccountTypes     []string  `json:"account_types"`
	Capes            []string  `json:"capes"`
	NameChanges      int       `json:"name_changes"`
	OwnerVerified    bool      `json:"owner_verified"`
	IdentityVerified bool      `json:"identity_verified"`
	PublicContact    string    `json:"public_contact"`
	CreatedAt        time.Time `json:"created_at"`
} // @name ListingResponse

// AdminListingResponse is the unredacted moderation view.
type AdminListingResponse struct {
	ListingResponse
	Status          string `json:"status"`
	OGUProfileURL   string `json:"ogu_profile_url"`
	ContactDiscord  string `json:"contact_discord"`
	ContactTelegram string `json:"contact_telegram"`
	TicketNumber    string `json:"ticket_number"`
} // @name AdminListingResponse

func toListingResponse(l *models.Listing) ListingResponse {
	return ListingResponse{
		ID:                l.ID,
		Username:          l.Username.String(),
		Description:       l.Description,
		PriceCurrentOffer: l.PriceCurrentOffer,
		PriceBin:          l.PriceBin,
		Currency:          l.Currency.String(),
		AccountTypes:      l.AccountTypes,
		Capes:             l.CapeNames(),
		NameChanges:       l.NameChanges,
		OwnerVerified:     l.OwnerVerified,
		IdentityVerified:  l.IdentityVerified,
		PublicContact:     l.PublicContact(),
		CreatedAt:         l.CreatedAt,
	}
}

func toAdminListingResponse(l *models.Listing) AdminListingResponse {
	return AdminListingResponse{
		ListingResponse: toListingResponse(l),
		Status:          l.Status.String(),
		OGUProfileURL:   l.OGUProfileURL,
		ContactDiscord:  l.ContactDiscord,
		ContactTelegram: l.ContactTelegram,
		TicketNumber:    l.TicketNumber,
	}
}

func toListingResponses(ls []*models.Listing) []ListingResponse {
	out := make([]ListingResponse, len(ls))
	for i, l := range ls {
		out[i] = toListingResponse(l)
	}
	return out
}

func toAdminListingResponses(ls []*models.Listing) []AdminListingResponse {
	out := make([]AdminListingResponse, len(ls))
	for i, l := range ls {
		out[i] = toAdminListingResponse(l)
	}
	return out
}

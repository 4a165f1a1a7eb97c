// Package services contains stateless domain services for the listing bounded
// context: submission validation, the moderation state machine, and the
// catalog filter/sort logic. Everything here operates purely on domain types
// with zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/hellohellohell0/mcmarket/services/listing/domain"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// RawSubmission carries the untrusted fields of a new listing request.
// Pointer fields distinguish "absent" from zero values: the current offer in
// particular must be explicitly supplied, with 0 meaning "no offer".
type RawSubmission struct {
	Username          string
	Description       string
	PriceBin          *float64
	PriceCurrentOffer *float64
	Currency          string
	AccountTypes      []string
	Capes             []string
	NameChanges       *int
	OGUProfileURL     string
	ContactDiscord    string
	ContactTelegram   string
	TicketNumber      string
}

// SubmissionOptions selects between the two intake flows.
type SubmissionOptions struct {
	// AdminAuthored relaxes the public-flow requirements: the buy-it-now
	// price and ticket reference become optional and the listing is created
	// directly in APPROVED status.
	AdminAuthored bool
}

// ValidateSubmission checks raw in order, short-circuiting on the first
// failure, and returns a normalized Listing ready for persistence. Checks and
// their order mirror the public intake form:
//
//  1. username non-empty after trimming (and within username bounds)
//  2. at least one account type, all from the fixed vocabulary
//  3. name-change count present, normalized into [0, 15]
//  4. description non-empty after trimming
//  5. buy-it-now price present and non-negative (public flow)
//  6. current offer present; exactly 0 normalizes to "no offer"
//  7. at least one contact channel non-empty
//  8. ticket reference non-empty (public flow)
//
// Persistence is the caller's responsibility.
func ValidateSubmission(raw RawSubmission, opts SubmissionOptions) (*models.Listing, error) {
	username := strings.TrimSpace(raw.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	name, err := models.NewUsername(username)
	if err != nil {
		return nil, domain.NewValidationError("username", err.Error())
	}

	if len(raw.AccountTypes) == 0 {
		return nil, domain.NewValidationError("account_types", "at least one account type is required")
	}
	for _, t := range raw.AccountTypes {
		if !models.IsValidAccountType(t) {
			return nil, domain.NewValidationError("account_types", "unknown account type "+t)
		}
	}

	if raw.NameChanges == nil {
		return nil, domain.NewValidationError("name_changes", "name change count is required")
	}
	nameChanges := *raw.NameChanges
	if nameChanges < 0 {
		return nil, domain.NewValidationError("name_changes", "name change count must not be negative")
	}
	if nameChanges > models.NameChangesSentinel {
		// 15 is the "15 or more" sentinel; anything above collapses into it.
		nameChanges = models.NameChangesSentinel
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return nil, domain.NewValidationError("description", "description is required")
	}

	if raw.PriceBin == nil && !opts.AdminAuthored {
		return nil, domain.NewValidationError("price_bin", "BIN price is required")
	}
	var priceBin *float64
	if raw.PriceBin != nil {
		if *raw.PriceBin < 0 {
			return nil, domain.NewValidationError("price_bin", "BIN price must not be negative")
		}
		v := *raw.PriceBin
		priceBin = &v
	}

	if raw.PriceCurrentOffer == nil {
		return nil, domain.NewValidationError("price_current_offer", "current offer is required (use 0 if no offer)")
	}
	var currentOffer *float64
	switch {
	case *raw.PriceCurrentOffer < 0:
		return nil, domain.NewValidationError("price_current_offer", "current offer must not be negative")
	case *raw.PriceCurrentOffer == 0:
		// zero is not a valid offer; it means "no current offer"
		currentOffer = nil
	default:
		v := *raw.PriceCurrentOffer
		currentOffer = &v
	}

	oguURL := strings.TrimSpace(raw.OGUProfileURL)
	discord := strings.TrimSpace(raw.ContactDiscord)
	telegram := strings.TrimSpace(raw.ContactTelegram)
	if oguURL == "" && discord == "" && telegram == "" {
		return nil, domain.NewValidationError("contact", "at least one contact method is required")
	}

	ticket := strings.TrimSpace(raw.TicketNumber)
	if ticket == "" && !opts.AdminAuthored {
		return nil, domain.NewValidationError("ticket_number", "ticket number is required")
	}

	currency, err := models.ParseCurrencyCode(strings.TrimSpace(raw.Currency))
	if err != nil {
		return nil, domain.NewValidationError("currency", err.Error())
	}

	for _, c := range raw.Capes {
		if !models.IsValidCapeName(c) {
			return nil, domain.NewValidationError("capes", "unknown cape "+c)
		}
	}

	status := models.StatusPending
	if opts.AdminAuthored {
		status = models.StatusApproved
	}

	l := &models.Listing{
		ID:                uuid.New(),
		Username:          name,
		Description:       description,
		PriceCurrentOffer: currentOffer,
		PriceBin:          priceBin,
		Currency:          currency,
		AccountTypes:      raw.AccountTypes,
		NameChanges:       nameChanges,
		OGUProfileURL:     oguURL,
		ContactDiscord:    discord,
		ContactTelegram:   telegram,
		TicketNumber:      ticket,
		Status:            status,
		CreatedAt:         time.Now().UTC(),
	}
	l.SetCapes(raw.Capes)
	return l, nil
}

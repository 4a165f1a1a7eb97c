package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Listing is the core aggregate: one account offered for sale.
//
// Price semantics: PriceCurrentOffer is nil when no offer stands (a submitted
// zero is normalized to nil before the aggregate is built). PriceBin is the
// fixed buy-it-now price; it is required in the public submission flow and
// optional when a moderator authors the listing directly.
type Listing struct {
	ID                uuid.UUID
	Username          Username
	Description       string
	PriceCurrentOffer *float64
	PriceBin          *float64
	Currency          CurrencyCode
	AccountTypes      []string
	Capes             []Cape
	NameChanges       int // 0..15, where 15 means "15 or more"
	OGUProfileURL     string
	ContactDiscord    string
	ContactTelegram   string
	TicketNumber      string
	OwnerVerified     bool // moderator-set only
	IdentityVerified  bool // moderator-set only
	Status            Status
	CreatedAt         time.Time
}

// Prices returns the listing's non-nil monetary amounts (current offer first,
// then buy-it-now). Used by price-range filtering, which matches if any one
// of them falls inside the bounds.
func (l *Listing) Prices() []float64 {
	prices := make([]float64, 0, 2)
	if l.PriceCurrentOffer != nil {
		prices = append(prices, *l.PriceCurrentOffer)
	}
	if l.PriceBin != nil {
		prices = append(prices, *l.PriceBin)
	}
	return prices
}

// CapeNames returns the names of the listing's capes.
func (l *Listing) CapeNames() []string {
	names := make([]string, len(l.Capes))
	for i, c := range l.Capes {
		names[i] = c.Name
	}
	return names
}

// HasCape reports whether the listing carries a cape with the given name.
func (l *Listing) HasCape(name string) bool {
	for _, c := range l.Capes {
		if c.Name == name {
			return true
		}
	}
	return false
}

// HasAccountType reports whether the listing carries the given account-type tag.
func (l *Listing) HasAccountType(t string) bool {
	for _, at := range l.AccountTypes {
		if at == t {
			return true
		}
	}
	return false
}

// SetCapes replaces the listing's cape set wholesale, assigning fresh cape IDs
// owned by this listing. Duplicate names collapse to one cape.
func (l *Listing) SetCapes(names []string) {
	capes := make([]Cape, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		capes = append(capes, NewCape(l.ID, n))
	}
	l.Capes = capes
}

// PublicContact derives the redacted contact string shown to buyers.
// Raw handles and the marketplace profile URL never leave the moderation views.
func (l *Listing) PublicContact() string {
	switch {
	case l.ContactDiscord != "":
		return fmt.Sprintf("Discord: %s", l.ContactDiscord)
	case l.ContactTelegram != "":
		return fmt.Sprintf("Telegram: %s", l.ContactTelegram)
	default:
		return "See OGU profile"
	}
}

package models

import "github.com/google/uuid"

// Cape is a cosmetic tag record owned by exactly one Listing. Capes are
// deleted with their listing and replaced wholesale when an edit supplies a
// new tag set.
type Cape struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	Name      string
}

// NewCape constructs a Cape owned by the given listing.
func NewCape(listingID uuid.UUID, name string) Cape {
	return Cape{
		ID:        uuid.New(),
		ListingID: listingID,
		Name:      name,
	}
}

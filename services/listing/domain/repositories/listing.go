package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// StoreFilter carries the predicates a store implementation may push down
// into its query. Pushdown is an optimization only: the query orchestrator
// re-applies the canonical filter to every candidate, so a store is free to
// ignore any field and return a superset.
type StoreFilter struct {
	Status *models.Status

	// MaxNameChanges is set only when the caller's bound is below the
	// "15 or more" sentinel.
	MaxNameChanges *int

	// CapeNames narrows to listings carrying any of the given capes.
	CapeNames []string

	// MinPrice and MaxPrice bound either price column inclusively.
	MinPrice *float64
	MaxPrice *float64
}

// ListingRepository is the persistence interface for the Listing aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Capes are exclusively owned: Create persists them atomically with the
// listing, Delete cascades to them, and Update replaces them wholesale when
// asked to.
type ListingRepository interface {
	Create(ctx context.Context, l *models.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)

	// Find retrieves listings matching the pushdown filter, capes included,
	// ordered by creation time descending.
	Find(ctx context.Context, f StoreFilter) ([]*models.Listing, error)

	// UpdateStatus persists a moderation status change.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error

	// Update persists field edits. When replaceCapes is true the stored cape
	// set is deleted and recreated from l.Capes.
	Update(ctx context.Context, l *models.Listing, replaceCapes bool) error

	// UpdatePrice persists a price edit. Nil means "clear".
	UpdatePrice(ctx context.Context, id uuid.UUID, currentOffer, bin *float64) error

	// Delete removes a listing and, by cascade, its capes.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteRecentPending removes up to count of the most recently created
	// PENDING listings and returns the deleted IDs.
	DeleteRecentPending(ctx context.Context, count int) ([]uuid.UUID, error)
}

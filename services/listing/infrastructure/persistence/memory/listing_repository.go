// Package memory provides an in-memory ListingRepository used by unit tests
// and local development. It honors the same pushdown contract as the Postgres
// implementation: anything StoreFilter sets narrows the result, anything unset
// is unbounded, and callers re-filter with the canonical predicate anyway.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	listingdomain "github.com/hellohellohell0/mcmarket/services/listing/domain"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/repositories"
)

// ListingRepository is a mutex-guarded map of listings keyed by id.
type ListingRepository struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]*models.Listing
	order    map[uuid.UUID]int // insertion sequence, for stable tie-breaking
	seq      int
}

// NewListingRepository returns an empty in-memory repository.
func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		listings: make(map[uuid.UUID]*models.Listing),
		order:    make(map[uuid.UUID]int),
	}
}

// Create stores a copy of l.
func (r *ListingRepository) Create(_ context.Context, l *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ID] = clone(l)
	r.order[l.ID] = r.seq
	r.seq++
	return nil
}

// GetByID returns a copy of the stored listing or ErrListingNotFound.
func (r *ListingRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, listingdomain.ErrListingNotFound
	}
	return clone(l), nil
}

// Find returns copies of listings matching the pushdown filter in insertion
// order (the Postgres implementation orders by created_at; tests that care
// about ordering set distinct timestamps).
func (r *ListingRepository) Find(_ context.Context, f repositories.StoreFilter) ([]*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Listing
	for _, l := range r.listings {
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.MaxNameChanges != nil && l.NameChanges > *f.MaxNameChanges {
			continue
		}
		if len(f.CapeNames) > 0 && !hasAnyCape(l, f.CapeNames) {
			continue
		}
		if (f.MinPrice != nil || f.MaxPrice != nil) && !anyPriceInRange(l, f.MinPrice, f.MaxPrice) {
			continue
		}
		out = append(out, clone(l))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return r.order[out[i].ID] < r.order[out[j].ID]
	})
	return out, nil
}

// UpdateStatus mutates the stored listing's status.
func (r *ListingRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return listingdomain.ErrListingNotFound
	}
	l.Status = status
	return nil
}

// Update overwrites the stored listing with l. replaceCapes is implicit here
// because the whole aggregate is replaced.
func (r *ListingRepository) Update(_ context.Context, l *models.Listing, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[l.ID]; !ok {
		return listingdomain.ErrListingNotFound
	}
	r.listings[l.ID] = clone(l)
	return nil
}

// UpdatePrice overwrites both prices.
func (r *ListingRepository) UpdatePrice(_ context.Context, id uuid.UUID, currentOffer, bin *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return listingdomain.ErrListingNotFound
	}
	l.PriceCurrentOffer = copyFloat(currentOffer)
	l.PriceBin = copyFloat(bin)
	return nil
}

// Delete removes the listing (capes go with the aggregate).
func (r *ListingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return listingdomain.ErrListingNotFound
	}
	delete(r.listings, id)
	delete(r.order, id)
	return nil
}

// DeleteRecentPending removes up to count of the most recently created
// PENDING listings.
func (r *ListingRepository) DeleteRecentPending(_ context.Context, count int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []*models.Listing
	for _, l := range r.listings {
		if l.Status == models.StatusPending {
			pending = append(pending, l)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})

	if count > len(pending) {
		count = len(pending)
	}
	ids := make([]uuid.UUID, 0, count)
	for _, l := range pending[:count] {
		delete(r.listings, l.ID)
		delete(r.order, l.ID)
		ids = append(ids, l.ID)
	}
	return ids, nil
}

func hasAnyCape(l *models.Listing, names []string) bool {
	for _, n := range names {
		if l.HasCape(n) {
			return true
		}
	}
	return false
}

func anyPriceInRange(l *models.Listing, min, max *float64) bool {
	for _, p := range l.Prices() {
		if min != nil && p < *min {
			continue
		}
		if max != nil && p > *max {
			continue
		}
		return true
	}
	return false
}

func clone(l *models.Listing) *models.Listing {
	c := *l
	c.PriceCurrentOffer = copyFloat(l.PriceCurrentOffer)
	c.PriceBin = copyFloat(l.PriceBin)
	c.AccountTypes = append([]string(nil), l.AccountTypes...)
	c.Capes = append([]models.Cape(nil), l.Capes...)
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

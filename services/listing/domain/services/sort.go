package services

import (
	"sort"

	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"     // createdAt descending (default)
	SortOldest    SortKey = "oldest"     // createdAt ascending
	SortPriceAsc  SortKey = "price_asc"  // buy-it-now ascending, nil BIN last
	SortPriceDesc SortKey = "price_desc" // buy-it-now descending, nil BIN last
)

// ParseSortKey maps a raw string to a SortKey, defaulting to SortNewest for
// empty or unrecognized input.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest, SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	}
	return SortNewest
}

// SortListings orders ls in place by the given key. The sort is stable so
// ties keep their incoming (insertion) order.
func SortListings(ls []*models.Listing, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(ls, func(i, j int) bool {
			return ls[i].CreatedAt.Before(ls[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(ls, func(i, j int) bool {
			return binLess(ls[i].PriceBin, ls[j].PriceBin, false)
		})
	case SortPriceDesc:
		sort.SliceStable(ls, func(i, j int) bool {
			return binLess(ls[i].PriceBin, ls[j].PriceBin, true)
		})
	default: // SortNewest
		sort.SliceStable(ls, func(i, j int) bool {
			return ls[i].CreatedAt.After(ls[j].CreatedAt)
		})
	}
}

// binLess compares buy-it-now prices. Listings without a BIN sort last
// regardless of direction.
func binLess(a, b *float64, desc bool) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	case desc:
		return *a > *b
	default:
		return *a < *b
	}
}

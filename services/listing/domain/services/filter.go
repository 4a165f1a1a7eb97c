package services

import (
	"strings"

	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// Criteria is the set of independently optional catalog filters. Nil pointer
// fields and empty slices mean "unbounded". Criteria compose with AND across
// categories; within AccountTypes and Capes any one matching tag suffices —
// a buyer filtering for "OG or Stats" wants either, but combining a price
// bound with a name-change bound expects both to hold.
type Criteria struct {
	// UsernameContains matches case-insensitively against the username.
	UsernameContains string

	// MinLength and MaxLength bound the username length in characters.
	MinLength *int
	MaxLength *int

	// MinPrice and MaxPrice bound the price range inclusively. A listing
	// matches when any of its non-nil prices (current offer, buy-it-now)
	// falls inside the bounds; a listing with no price never matches a
	// price-bounded query.
	MinPrice *float64
	MaxPrice *float64

	// MaxNameChanges bounds the name-change count. The sentinel value 15
	// disables the bound entirely ("15 or more" passes everything).
	MaxNameChanges *int

	// AccountTypes matches listings tagged with any of the given types.
	AccountTypes []string

	// Capes matches listings carrying any of the given cape names.
	Capes []string
}

// MatchesCriteria is the single canonical catalog predicate: it reports
// whether the listing satisfies every active criterion. Visibility (status)
// is not a criterion here; the public search path scopes candidates to
// APPROVED before this predicate runs.
func MatchesCriteria(l *models.Listing, c Criteria) bool {
	username := l.Username.String()

	if c.UsernameContains != "" &&
		!strings.Contains(strings.ToLower(username), strings.ToLower(c.UsernameContains)) {
		return false
	}
	if c.MinLength != nil && len(username) < *c.MinLength {
		return false
	}
	if c.MaxLength != nil && len(username) > *c.MaxLength {
		return false
	}

	if c.MinPrice != nil || c.MaxPrice != nil {
		if !anyPriceInRange(l.Prices(), c.MinPrice, c.MaxPrice) {
			return false
		}
	}

	if c.MaxNameChanges != nil && *c.MaxNameChanges < models.NameChangesSentinel {
		if l.NameChanges > *c.MaxNameChanges {
			return false
		}
	}

	if len(c.AccountTypes) > 0 && !anyTagMatches(c.AccountTypes, l.HasAccountType) {
		return false
	}
	if len(c.Capes) > 0 && !anyTagMatches(c.Capes, l.HasCape) {
		return false
	}

	return true
}

// anyPriceInRange reports whether any price falls inside the inclusive
// [min, max] range, with nil bounds treated as unbounded on that side.
// An empty price list never matches.
func anyPriceInRange(prices []float64, min, max *float64) bool {
	for _, p := range prices {
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

func anyTagMatches(requested []string, has func(string) bool) bool {
	for _, tag := range requested {
		if has(tag) {
			return true
		}
	}
	return false
}

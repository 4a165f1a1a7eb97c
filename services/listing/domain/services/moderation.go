package services

import (
	"fmt"

	domain "github.com/hellohellohell0/mcmarket/services/listing/domain"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

// legalTransitions enumerates the moderation edges. PENDING is initial only:
// no edge leads back to it.
var legalTransitions = map[models.Status][]models.Status{
	models.StatusPending:  {models.StatusApproved, models.StatusRejected},
	models.StatusApproved: {models.StatusRejected},
	models.StatusRejected: {models.StatusApproved},
}

// CanTransition reports whether moving from one status to another is a legal
// moderation edge. Same-state moves are not edges; Transition treats them as
// no-ops instead.
func CanTransition(from, to models.Status) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition applies a moderation action to the listing, mutating its status.
// A same-state transition is an idempotent no-op success. Any other move that
// is not a legal edge fails with ErrInvalidTransition and leaves the listing
// unchanged.
func Transition(l *models.Listing, to models.Status) error {
	if l.Status == to {
		return nil
	}
	if !CanTransition(l.Status, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, l.Status, to)
	}
	l.Status = to
	return nil
}

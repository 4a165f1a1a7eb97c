package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for listing lifecycle events.
const (
	TopicListingSubmitted = "listing.submitted"
	TopicListingApproved  = "listing.approved"
	TopicListingRejected  = "listing.rejected"
	TopicListingDeleted   = "listing.deleted"
)

// ListingSubmittedEvent is published, in the insert transaction, after a new
// submission is persisted in PENDING status.
type ListingSubmittedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ListingID  uuid.UUID `json:"listing_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ListingStatusChangedEvent is published after a moderation transition.
// It rides TopicListingApproved or TopicListingRejected depending on the
// resulting status.
type ListingStatusChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ListingID  uuid.UUID `json:"listing_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ListingDeletedEvent is published after a listing (and its capes) is removed.
type ListingDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ListingID  uuid.UUID `json:"listing_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

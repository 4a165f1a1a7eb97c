package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
)

const (
	// ListingCacheTTL is the time-to-live for cached listings.
	ListingCacheTTL = 24 * time.Hour

	listingCacheKeyPrefix = "listing"
)

// ListingCache is a Redis read model for single-listing fetches. Entries are
// JSON-serialized full aggregates (capes included) keyed "listing:{id}".
//
// The cache is warmed by the worker on approval and read through on fetch;
// moderation edits and deletes invalidate it. A stale entry can survive up to
// the TTL if an invalidation is lost, which is acceptable for catalog reads.
type ListingCache struct {
	client *RedisClient
}

// NewListingCache creates a ListingCache backed by the given RedisClient.
func NewListingCache(r *RedisClient) *ListingCache {
	return &ListingCache{client: r}
}

// Get retrieves a cached listing by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ListingCache) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	data, err := c.client.Client().Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var l models.Listing
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("cache unmarshal listing: %w", err)
	}
	return &l, nil
}

// Set writes a listing with the standard TTL.
func (c *ListingCache) Set(ctx context.Context, l *models.Listing) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("cache marshal listing: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(l.ID), data, ListingCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached listing.
func (c *ListingCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "listing:{id}"
func (c *ListingCache) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", listingCacheKeyPrefix, id)
}

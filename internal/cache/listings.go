package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// AvailableFoodKey caches the recipient-facing available-food listing.
	AvailableFoodKey = "food:available"
	storeKeyPrefix   = "store:donor:%s"
)

const (
	// AvailableFoodTTL is short: the listing changes with every claim
	// and every new item, and staleness is visible to recipients.
	AvailableFoodTTL = 30 * time.Second
	// StoreTTL covers the store-by-donor lookup done on every
	// authenticated donor request.
	StoreTTL = 5 * time.Minute
)

// StoreKey returns the cache key for a donor's store.
func StoreKey(donorID uuid.UUID) string {
	return fmt.Sprintf(storeKeyPrefix, donorID)
}

// Invalidate removes a key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateAvailableFood drops the cached available-food listing.
// Called after any write that changes item availability.
func InvalidateAvailableFood(ctx context.Context) {
	Invalidate(ctx, AvailableFoodKey)
}

// InvalidateStore drops a donor's cached store.
func InvalidateStore(ctx context.Context, donorID uuid.UUID) {
	Invalidate(ctx, StoreKey(donorID))
}

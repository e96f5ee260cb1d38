package shared

import (
	"context"
	"time"
)

// IdempotencyStore deduplicates externally-delivered notifications such
// as payment webhooks, which providers retry until acknowledged.
type IdempotencyStore interface {
	// MarkProcessed marks a notification as processed with a TTL.
	// Returns true if it was newly marked, false if already processed.
	MarkProcessed(ctx context.Context, notificationID string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a notification has already been processed.
	IsProcessed(ctx context.Context, notificationID string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}

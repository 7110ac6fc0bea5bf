// Package cache provides the submission idempotency store used to reject
// duplicate form mutations.
package cache

import (
	"context"
	"time"
)

// IdempotencyStore records idempotency keys for form submissions. A key is
// generated per form-open on the browser side and sent with the mutation;
// the first claim wins, later claims of the same key are duplicates.
type IdempotencyStore interface {
	// Claim atomically registers a key with a TTL. Returns true if the key
	// was newly claimed, false if a submission with the same key was
	// already accepted.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsClaimed checks whether a key has already been claimed.
	IsClaimed(ctx context.Context, key string) (bool, error)

	// Release frees a claimed key so the same submission can be retried.
	// Called when the guarded mutation fails and nothing was committed.
	Release(ctx context.Context, key string) error

	Close() error
}

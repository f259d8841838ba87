package driven

import (
	"context"
	"time"
)

// DistributedLock serialises updates to a single conversation across instances.
type DistributedLock interface {
	// Acquire attempts to acquire a named lock with the given TTL.
	// Returns true if the lock was acquired, false if it is held elsewhere.
	Acquire(ctx context.Context, name string, ttl time.Duration) (acquired bool, err error)

	// Release releases a named lock held by this instance.
	// Safe to call even if the lock is not held or has expired.
	Release(ctx context.Context, name string) error
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DistributedLock = (*Lock)(nil)

// Lock is a single-process DistributedLock with TTL expiry
type Lock struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

// NewLock creates an in-process lock
func NewLock() *Lock {
	return &Lock{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

// Acquire takes the named lock unless an unexpired holder exists
func (l *Lock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expires, ok := l.held[name]; ok && now.Before(expires) {
		return false, nil
	}
	l.held[name] = now.Add(ttl)
	return true, nil
}

// Release drops the named lock
func (l *Lock) Release(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, name)
	return nil
}

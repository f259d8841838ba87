package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestLock_OwnerIDsAreUnique(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	if NewLock(client).ownerID == NewLock(client).ownerID {
		t.Error("expected unique owner IDs")
	}
}

func TestLock_AcquireIsExclusive(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	lock1 := NewLock(client)
	lock2 := NewLock(client)
	ctx := context.Background()

	acquired, err := lock1.Acquire(ctx, "conversation:a", 10*time.Second)
	if err != nil || !acquired {
		t.Fatalf("expected first acquire to succeed, got %v %v", acquired, err)
	}

	acquired, err = lock2.Acquire(ctx, "conversation:a", 10*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acquired {
		t.Error("expected second acquire to fail")
	}

	acquired, err = lock2.Acquire(ctx, "conversation:b", 10*time.Second)
	if err != nil || !acquired {
		t.Errorf("expected a different name to be free, got %v %v", acquired, err)
	}
}

func TestLock_ReleaseAllowsReacquire(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewLock(client)
	ctx := context.Background()

	if _, err := lock.Acquire(ctx, "conversation:a", 10*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lock.Release(ctx, "conversation:a"); err != nil {
		t.Fatalf("unexpected error on release: %v", err)
	}

	acquired, err := lock.Acquire(ctx, "conversation:a", 10*time.Second)
	if err != nil || !acquired {
		t.Errorf("expected to acquire after release, got %v %v", acquired, err)
	}
}

func TestLock_ReleaseNotHeld(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	if err := NewLock(client).Release(context.Background(), "conversation:a"); err != nil {
		t.Errorf("unexpected error releasing unheld lock: %v", err)
	}
}

func TestLock_ReleaseByOtherOwnerKeepsLock(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	lock1 := NewLock(client)
	lock2 := NewLock(client)
	ctx := context.Background()

	if _, err := lock1.Acquire(ctx, "conversation:a", 10*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lock2.Release(ctx, "conversation:a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acquired, err := lock2.Acquire(ctx, "conversation:a", 10*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acquired {
		t.Error("expected lock to still be held by lock1")
	}
}

func TestLock_ExpiresAfterTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	lock1 := NewLock(client)
	lock2 := NewLock(client)
	ctx := context.Background()

	if _, err := lock1.Acquire(ctx, "conversation:a", 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(6 * time.Second)

	acquired, err := lock2.Acquire(ctx, "conversation:a", 5*time.Second)
	if err != nil || !acquired {
		t.Errorf("expected expired lock to be free, got %v %v", acquired, err)
	}
}

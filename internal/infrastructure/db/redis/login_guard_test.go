package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestGuard(t *testing.T) (*LoginGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginGuard(client), mr
}

func TestLoginGuard_NotBlockedInitially(t *testing.T) {
	guard, _ := newTestGuard(t)

	blocked, err := guard.TooManyFailures(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if blocked {
		t.Fatalf("fresh email should not be blocked")
	}
}

func TestLoginGuard_BlocksAfterMaxFailures(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()
	email := "alice@example.com"

	for i := 0; i < defaultMaxFailures-1; i++ {
		if err := guard.RecordFailure(ctx, email); err != nil {
			t.Fatalf("record failure %d: %v", i, err)
		}
		blocked, err := guard.TooManyFailures(ctx, email)
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if blocked {
			t.Fatalf("blocked after only %d failures", i+1)
		}
	}

	if err := guard.RecordFailure(ctx, email); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	blocked, err := guard.TooManyFailures(ctx, email)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !blocked {
		t.Fatalf("expected block after %d failures", defaultMaxFailures)
	}
}

func TestLoginGuard_ClearResetsCounter(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()
	email := "alice@example.com"

	for i := 0; i < defaultMaxFailures; i++ {
		if err := guard.RecordFailure(ctx, email); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}
	if err := guard.Clear(ctx, email); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	blocked, err := guard.TooManyFailures(ctx, email)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if blocked {
		t.Fatalf("still blocked after clear")
	}
}

func TestLoginGuard_WindowExpires(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()
	email := "alice@example.com"

	for i := 0; i < defaultMaxFailures; i++ {
		if err := guard.RecordFailure(ctx, email); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}

	mr.FastForward(defaultWindow + time.Second)

	blocked, err := guard.TooManyFailures(ctx, email)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if blocked {
		t.Fatalf("still blocked after window expired")
	}
}

func TestLoginGuard_PerEmailIsolation(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()

	for i := 0; i < defaultMaxFailures; i++ {
		if err := guard.RecordFailure(ctx, "alice@example.com"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}

	blocked, err := guard.TooManyFailures(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if blocked {
		t.Fatalf("unrelated email blocked")
	}
}

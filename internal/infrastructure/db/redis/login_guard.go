package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// LoginGuard throttles repeated failed logins per email using a Redis
// counter with a fixed expiry window.
// Key format: login_fail:<email>
type LoginGuard struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client) *LoginGuard {
	return &LoginGuard{client: client, maxFailures: defaultMaxFailures, window: defaultWindow}
}

// TooManyFailures reports whether the email has burned its failure budget
// inside the current window.
func (g *LoginGuard) TooManyFailures(ctx context.Context, email string) (bool, error) {
	n, err := g.client.Get(ctx, g.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login guard check: %w", err)
	}
	return n >= int64(g.maxFailures), nil
}

// RecordFailure increments the failure counter; the first failure starts
// the expiry window.
func (g *LoginGuard) RecordFailure(ctx context.Context, email string) error {
	key := g.key(email)
	n, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login guard incr: %w", err)
	}
	if n == 1 {
		if err := g.client.Expire(ctx, key, g.window).Err(); err != nil {
			return fmt.Errorf("login guard expire: %w", err)
		}
	}
	return nil
}

// Clear resets the counter after a successful login.
func (g *LoginGuard) Clear(ctx context.Context, email string) error {
	return g.client.Del(ctx, g.key(email)).Err()
}

func (g *LoginGuard) key(email string) string {
	return "login_fail:" + email
}

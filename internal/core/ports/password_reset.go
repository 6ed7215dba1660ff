package ports

import (
	"context"
	"time"
)

// PasswordResetService manages the single-use reset-token lifecycle.
type PasswordResetService interface {
	// Request issues a reset token for the account, if one exists, and
	// hands the notification off for asynchronous delivery. Returns
	// domain.ErrResetCooldown inside the per-email cooldown window.
	// Unknown emails succeed silently.
	Request(ctx context.Context, email string) error

	// Reset consumes a token exactly once, setting the new password.
	Reset(ctx context.Context, token, newPassword string) error
}

// ResetNotification carries everything the delivery channel needs to reach
// the account holder.
type ResetNotification struct {
	Email     string
	Token     string
	ExpiresAt time.Time
}

// ResetNotifier delivers a reset notification. The production delivery
// channel (email) is an external collaborator; implementations here log.
type ResetNotifier interface {
	Notify(ctx context.Context, n ResetNotification) error
}

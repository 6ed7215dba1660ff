package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
)

const (
	defaultResetTokenTTL = time.Hour
	defaultResetCooldown = 12 * time.Minute
	resetTokenBytes      = 32
)

// PasswordResetService issues and consumes single-use password-reset
// tokens. Requests are throttled by a flat per-email cooldown on the
// stored requested-at timestamp, not a request-count quota.
type PasswordResetService struct {
	users    ports.UserRepository
	notifier ports.ResetNotifier // nil disables delivery
	tokenTTL time.Duration
	cooldown time.Duration
	now      func() time.Time
}

func NewPasswordResetService(users ports.UserRepository, notifier ports.ResetNotifier, tokenTTL, cooldown time.Duration) *PasswordResetService {
	if tokenTTL <= 0 {
		tokenTTL = defaultResetTokenTTL
	}
	if cooldown <= 0 {
		cooldown = defaultResetCooldown
	}
	return &PasswordResetService{
		users:    users,
		notifier: notifier,
		tokenTTL: tokenTTL,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Request issues a fresh reset token, overwriting any previous one.
// Unknown emails return nil so the endpoint cannot be used to enumerate
// accounts; only the cooldown is reported distinctly, and only for
// accounts that exist.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return err
	}

	now := s.now().UTC()
	if !s.canRequest(user, now) {
		return domain.ErrResetCooldown
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	expiresAt := now.Add(s.tokenTTL)
	if err := s.users.SetResetToken(ctx, user.Email, token, expiresAt, now); err != nil {
		return err
	}

	if s.notifier != nil {
		return s.notifier.Notify(ctx, ports.ResetNotification{
			Email:     user.Email,
			Token:     token,
			ExpiresAt: expiresAt,
		})
	}
	return nil
}

// canRequest applies the flat cooldown: a request is allowed when no prior
// request exists or the prior one is older than the cooldown window.
func (s *PasswordResetService) canRequest(user *domain.User, now time.Time) bool {
	if user.ResetRequestedAt == nil {
		return true
	}
	return now.Sub(*user.ResetRequestedAt) >= s.cooldown
}

// Reset consumes a token exactly once. Two concurrent calls with the same
// token cannot both succeed: the repository clears the token with a
// compare-and-set, and the loser sees ErrResetTokenInvalid.
func (s *PasswordResetService) Reset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrMissingFields
	}
	if len(newPassword) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	if user.ResetExpiresAt == nil || s.now().UTC().After(*user.ResetExpiresAt) {
		return domain.ErrResetTokenExpired
	}

	hash, err := domain.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.ConsumeResetToken(ctx, user.ID, token, hash)
}

// generateResetToken returns a 256-bit hex token.
func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

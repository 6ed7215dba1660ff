package ports

import (
	"context"
	"time"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

// UserRepository defines persistence for user accounts and their embedded
// password-reset fields. Implementations return domain sentinel errors for
// the conditions services branch on.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailExists when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Update applies the closed update set and bumps the updated-at
	// timestamp. Returns domain.ErrNoFieldsToUpdate when the update is
	// empty.
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// SetEnrollmentStatus writes the status directly, without validating
	// the prior state.
	SetEnrollmentStatus(ctx context.Context, id string, status domain.EnrollmentStatus) error

	// SetResetToken stores a reset token, its expiry, and the request
	// timestamp, overwriting any previous token for the user.
	SetResetToken(ctx context.Context, email, token string, expiresAt, requestedAt time.Time) error

	FindByResetToken(ctx context.Context, token string) (*domain.User, error)

	// ConsumeResetToken atomically sets the new password hash and clears
	// the reset-token fields, but only if the stored token still equals
	// token. Returns domain.ErrResetTokenInvalid when the token was
	// already consumed or replaced.
	ConsumeResetToken(ctx context.Context, id, token, passwordHash string) error

	// Delete removes a user record. Administrative escape hatch only.
	Delete(ctx context.Context, id string) error
}

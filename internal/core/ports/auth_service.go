package ports

import (
	"context"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

// AuthenticatedUser bundles a user with their church assignments, the shape
// returned by login, verify-token, and profile.
type AuthenticatedUser struct {
	*domain.User
	ChurchAssignments []domain.ChurchAssignment `json:"churchAssignments"`
}

// AuthService composes credential validation, token issuance, and
// assignment lookups behind the auth endpoints.
type AuthService interface {
	Register(ctx context.Context, email, password, name string, role domain.Role) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *AuthenticatedUser, error)
	VerifyToken(ctx context.Context, token string) (*AuthenticatedUser, error)
	Profile(ctx context.Context, userID string) (*AuthenticatedUser, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// UpdateProfile applies the closed update set to the caller's record.
	// Returns domain.ErrNoFieldsToUpdate when the update is empty.
	UpdateProfile(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error)
	Enroll(ctx context.Context, userID string) (*domain.User, error)
}

// TokenVerifier validates a bearer token and returns its claims. The auth
// middleware depends on this rather than on a signing secret.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// LoginGuard throttles repeated failed logins per email. A nil guard
// disables throttling.
type LoginGuard interface {
	// TooManyFailures reports whether the email has exceeded the failure
	// budget inside the current window.
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Clear(ctx context.Context, email string) error
}

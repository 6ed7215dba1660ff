package service

import (
	"context"
	"strings"

	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
)

// AuthService implements registration, login, token verification, profile
// lookup, password changes, and enrollment submission.
type AuthService struct {
	users       ports.UserRepository
	assignments ports.AssignmentRepository
	tokens      *TokenIssuer
	guard       ports.LoginGuard // nil disables login throttling
}

func NewAuthService(users ports.UserRepository, assignments ports.AssignmentRepository, tokens *TokenIssuer, guard ports.LoginGuard) *AuthService {
	return &AuthService{users: users, assignments: assignments, tokens: tokens, guard: guard}
}

// normalizeEmail makes email uniqueness case-insensitive at the service
// boundary.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password, name string, role domain.Role) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || name == "" {
		return "", nil, domain.ErrMissingFields
	}
	if role == "" {
		role = domain.RoleChurchAdmin
	}
	if !role.Valid() {
		return "", nil, domain.ErrInvalidRole
	}
	if len(password) < domain.MinPasswordLength {
		return "", nil, domain.ErrPasswordTooShort
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Email:            email,
		Name:             name,
		PasswordHash:     hash,
		Role:             role,
		EnrollmentStatus: domain.EnrollmentNone,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login validates credentials and mints a token. A missing account and a
// wrong password both surface as ErrInvalidCredentials so callers cannot
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *ports.AuthenticatedUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingFields
	}

	if s.guard != nil {
		blocked, err := s.guard.TooManyFailures(ctx, email)
		if err == nil && blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !domain.VerifyPassword(password, user.PasswordHash) {
		if s.guard != nil {
			_ = s.guard.RecordFailure(ctx, email)
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.guard != nil {
		_ = s.guard.Clear(ctx, email)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	auth, err := s.withAssignments(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, auth, nil
}

// VerifyToken checks a token presented out-of-band and returns the
// subject's fresh record. A structurally valid token whose user has since
// been removed yields ErrUserNotFound: the token outlives the account.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*ports.AuthenticatedUser, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.withAssignments(ctx, user)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*ports.AuthenticatedUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAssignments(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrMissingFields
	}
	if len(newPassword) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !domain.VerifyPassword(currentPassword, user.PasswordHash) {
		return domain.ErrIncorrectPassword
	}

	hash, err := domain.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// UpdateProfile applies the closed update set to the user's record. The
// repository rejects an empty update, so a request that names no fields
// never touches the store.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
	return s.users.Update(ctx, userID, update)
}

// Enroll submits the caller for church-admin enrollment, moving their
// status from none to pending. Statuses already past none are left alone.
func (s *AuthService) Enroll(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.EnrollmentStatus.CanTransitionTo(domain.EnrollmentPending) {
		return user, nil
	}

	if err := s.users.SetEnrollmentStatus(ctx, user.ID, domain.EnrollmentPending); err != nil {
		return nil, err
	}
	user.EnrollmentStatus = domain.EnrollmentPending
	return user, nil
}

func (s *AuthService) withAssignments(ctx context.Context, user *domain.User) (*ports.AuthenticatedUser, error) {
	assignments, err := s.assignments.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.AuthenticatedUser{User: user, ChurchAssignments: assignments}, nil
}

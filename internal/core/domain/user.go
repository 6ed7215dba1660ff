package domain

import (
	"errors"
	"time"
)

// Role is the closed set of user roles. Anything outside this set is
// rejected at the registration boundary.
type Role string

const (
	RoleSuperuser   Role = "superuser"
	RoleChurchAdmin Role = "church_admin"
	RoleUser        Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperuser, RoleChurchAdmin, RoleUser:
		return true
	}
	return false
}

// EnrollmentStatus tracks a church admin's progress through the
// enrollment pipeline.
type EnrollmentStatus string

const (
	EnrollmentNone     EnrollmentStatus = "none"
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentAssigned EnrollmentStatus = "assigned"
)

// enrollmentTransitions defines the forward-only enrollment state machine.
// There is no modeled path back out of "assigned"; removing an assignment
// leaves the status untouched.
var enrollmentTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	EnrollmentNone:    {EnrollmentPending},
	EnrollmentPending: {EnrollmentAssigned},
}

// CanTransitionTo reports whether moving from s to next is a modeled
// enrollment transition.
func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	for _, allowed := range enrollmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrChurchNotFound     = errors.New("church not found")

	ErrMissingToken = errors.New("access token required")
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrResetTokenInvalid  = errors.New("invalid reset token")
	ErrResetTokenExpired  = errors.New("reset token has expired")
	ErrResetCooldown      = errors.New("password reset recently requested")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// User models an account in the Updates platform. The password hash and
// reset-token fields never leave the process: they are excluded from JSON
// serialization entirely.
type User struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	Name             string           `json:"name"`
	PasswordHash     string           `json:"-"`
	Role             Role             `json:"role"`
	EnrollmentStatus EnrollmentStatus `json:"enrollment_status"`
	ResetToken       string           `json:"-"`
	ResetExpiresAt   *time.Time       `json:"-"`
	ResetRequestedAt *time.Time       `json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Claims is the identity carried inside a bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// UserUpdate is the closed set of fields a caller may change through the
// generic update path. Nil pointers mean "leave unchanged". Passwords are
// updated through the dedicated password paths, never through here.
type UserUpdate struct {
	Name             *string
	EnrollmentStatus *EnrollmentStatus
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.EnrollmentStatus == nil
}

package handler

import (
	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=superuser church_admin user"`
}

type verifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

type updateProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type loginResponse struct {
	Message string                   `json:"message"`
	Token   string                   `json:"token"`
	User    *ports.AuthenticatedUser `json:"user"`
}

type registerResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type verifyTokenResponse struct {
	Valid bool                     `json:"valid"`
	User  *ports.AuthenticatedUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/updates-app/updates-backend/internal/api/metrics"
	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
)

// AuthHandler exposes the auth endpoints: login, register, verify-token,
// profile, change-password, enroll, and the password-reset pair. Domain
// errors bubble up to the central error handler; only the endpoints whose
// status codes differ from the global mapping translate inline.
type AuthHandler struct {
	authService  ports.AuthService
	resetService ports.PasswordResetService
}

func NewAuthHandler(authService ports.AuthService, resetService ports.PasswordResetService) *AuthHandler {
	return &AuthHandler{authService: authService, resetService: resetService}
}

// Login authenticates a user and returns a JWT token plus the user's
// church assignments.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Register creates a new account. Role defaults to church_admin when
// omitted.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name, domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user,
	})
}

// VerifyToken validates a token presented in the request body and returns
// the subject's fresh record. Every failure mode is a 401 here: invalid,
// expired, and subject-deleted tokens are indistinguishable to the caller.
//
// @Summary      Verify a token out-of-band
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyTokenRequest  true  "Token to verify"
// @Success      200   {object}  verifyTokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/verify-token [post]
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	var req verifyTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.VerifyToken(c.Request().Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.TokenVerificationsTotal.WithLabelValues("user_missing").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUserNotFound.Error())
		}
		return err
	}

	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return c.JSON(http.StatusOK, verifyTokenResponse{Valid: true, User: user})
}

// Profile returns the caller's own fresh record plus church assignments.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AuthenticatedUser
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword updates the caller's password after re-verifying the
// current one.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

// UpdateProfile changes the caller's profile fields. Only the fields in
// the closed update set are accepted; a request naming none of them is a
// 400.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), userID, domain.UserUpdate{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Enroll submits the caller for church-admin enrollment.
//
// @Summary      Submit church-admin enrollment
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/enroll [post]
func (h *AuthHandler) Enroll(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Enroll(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ForgotPassword starts the reset flow. The response is the same whether
// or not the account exists; only the cooldown surfaces distinctly.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resetService.Request(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrResetCooldown) {
			metrics.PasswordResetsTotal.WithLabelValues("requested", "cooldown").Inc()
		} else {
			metrics.PasswordResetsTotal.WithLabelValues("requested", "error").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested", "ok").Inc()
	return c.JSON(http.StatusAccepted, messageResponse{
		Message: "If an account with that email exists, a reset link has been sent",
	})
}

// ResetPassword consumes a reset token and sets the new password.
//
// @Summary      Complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resetService.Reset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrResetTokenInvalid):
			metrics.PasswordResetsTotal.WithLabelValues("completed", "invalid_token").Inc()
		case errors.Is(err, domain.ErrResetTokenExpired):
			metrics.PasswordResetsTotal.WithLabelValues("completed", "expired_token").Inc()
		default:
			metrics.PasswordResetsTotal.WithLabelValues("completed", "error").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password has been reset"})
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
)

// Auth extracts the Bearer token, asks the verifier to validate it, and
// injects the decoded claims into the request context. A missing or
// malformed header is a 401; a token that fails verification is a 403, with
// no distinction between tampering and expiry.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrMissingToken.Error())
			}

			// A bearer scheme with nothing after it is a missing token, not an
			// invalid one.
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrMissingToken.Error())
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrInvalidToken.Error())
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", string(claims.Role))

			return next(c)
		}
	}
}

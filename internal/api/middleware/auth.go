package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// Context keys set by Auth and OptionalAuth.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// TokenVerifier is the slice of the auth service the middleware needs.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*ports.Claims, error)
}

// Auth validates the bearer token, rejects revoked sessions and injects the
// claims into the request context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request())
			if err != nil {
				return err
			}

			claims, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return err
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth injects claims when a valid token is present and lets the
// request through anonymously otherwise.
func OptionalAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(c)
			}
			token, err := bearerToken(c.Request())
			if err != nil {
				return next(c)
			}

			claims, err := verifier.Verify(c.Request().Context(), token)
			switch {
			case err == nil:
				setClaims(c, claims)
			case errors.Is(err, domain.ErrInvalidCredentials):
			default:
				return err
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth or OptionalAuth.
func ClaimsFrom(c echo.Context) (*ports.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*ports.Claims)
	return claims, ok && claims != nil
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func setClaims(c echo.Context, claims *ports.Claims) {
	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.UserID)
	c.Set(RoleKey, claims.Role)
}

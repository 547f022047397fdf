// Package middleware gates requests on the bearer credential. The resolved
// identity travels as an explicit context value on the echo context, never as
// ambient global state.
package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sweetshop/api/internal/models"
	"github.com/sweetshop/api/pkg/tokens"
)

const identityKey = "identity"

// Identity is the authenticated caller as proven by the bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

type Auth struct {
	Secret []byte
}

func (a *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := a.identityFromRequest(c)
		if err != nil {
			return err
		}
		c.Set(identityKey, id)
		return next(c)
	}
}

func (a *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := a.identityFromRequest(c)
		if err != nil {
			return err
		}
		if id.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		c.Set(identityKey, id)
		return next(c)
	}
}

func (a *Auth) identityFromRequest(c echo.Context) (Identity, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header")
	}

	claims, err := tokens.AccessClaimsFromToken(raw, a.Secret)
	if err != nil {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	return Identity{UserID: userID, Role: claims.Role}, nil
}

// IdentityFrom recovers the identity set by RequireAuth / RequireAdmin.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

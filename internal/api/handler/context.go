package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both user_id and role
// must be present (presence proves the middleware ran), and the role must be
// one of the known values.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleStr, _ := c.Get("role").(string)
	role = domain.Role(roleStr)
	if !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing role")
	}

	return userID, role, nil
}

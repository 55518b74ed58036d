package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware
// and performs a fast-fail check before any service call: username and
// role must be non-empty (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (username, role string, userID int64, err error) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	if username == "" || role == "" {
		return "", "", 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(int64)
	return username, role, userID, nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// ctxActor extracts the principal injected by the Auth middleware. Both
// fields must be present: their absence means the middleware did not run or
// the token carried no identity, and no service call should proceed.
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	if role == "" || userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: userID, Role: role}, nil
}

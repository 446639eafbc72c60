package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC gates a route group by role. Per-resource rules (assigned driver,
// complaint reporter) are enforced in the services; this only rejects roles
// that could never perform the operation.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

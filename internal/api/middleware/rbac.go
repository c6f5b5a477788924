package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
)

// RBAC gates a route by role. Denials are 401s matching the rest of the
// authorization surface; the error envelope is applied centrally.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, ok := domain.ParseRole(raw)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}
			return next(c)
		}
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
	"github.com/alihassan1221/service-booking-platform/internal/core/ports"
)

// ctxActor extracts the actor injected by the Auth middleware and fails fast
// before any service call when the claims are missing or malformed.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("user_id").(string)
	raw, _ := c.Get("role").(string)
	role, ok := domain.ParseRole(raw)
	if id == "" || !ok {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: id, Role: role}, nil
}

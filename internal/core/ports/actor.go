package ports

import "github.com/alihassan1221/service-booking-platform/internal/core/domain"

// Actor identifies the authenticated user performing a request. It is
// resolved by the auth middleware from the bearer token and the user store.
type Actor struct {
	ID   string
	Role domain.Role
}

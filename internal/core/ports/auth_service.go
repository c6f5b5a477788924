package ports

import (
	"context"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
)

// AuthService implements registration and login. Both return a signed bearer
// token alongside the account so the client can start a session immediately.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

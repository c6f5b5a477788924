package ports

import (
	"context"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
)

// CreateManagerInput carries the fields for an admin-created manager account.
// The role is not part of the input; the service forces it to manager.
type CreateManagerInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput is a partial account update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// UserService defines the admin-facing account management use cases.
type UserService interface {
	List(ctx context.Context, actor Actor) ([]*domain.User, error)
	CreateManager(ctx context.Context, actor Actor, input CreateManagerInput) (*domain.User, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

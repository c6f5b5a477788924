package ports

import (
	"context"
	"time"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
)

// CreateBookingInput carries the fields a user submits for a new booking.
// Status and ownership are not part of the input: the service forces status
// to pending and the owner to the acting user.
type CreateBookingInput struct {
	VehicleType      string
	IssueDescription string
	PreferredDate    time.Time
	Location         string
}

// UpdateBookingInput is a partial update. Nil fields are left unchanged;
// Status set by a plain user is rejected before anything else is looked at.
type UpdateBookingInput struct {
	VehicleType      *string
	IssueDescription *string
	PreferredDate    *time.Time
	Location         *string
	Status           *string
}

// BookingService defines the booking lifecycle use cases. Every operation
// takes the acting user so authorization is decided inside the core, not in
// the transport layer.
type BookingService interface {
	List(ctx context.Context, actor Actor) ([]*domain.Booking, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Booking, error)
	Create(ctx context.Context, actor Actor, input CreateBookingInput) (*domain.Booking, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

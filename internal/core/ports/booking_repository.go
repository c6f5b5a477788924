package ports

import (
	"context"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// FindByID returns domain.ErrBookingNotFound when no booking has the id.
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// FindAll returns bookings newest first. When ownerID is non-empty the
	// result is restricted to that owner's bookings.
	FindAll(ctx context.Context, ownerID string) ([]*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

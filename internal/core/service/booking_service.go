package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
	"github.com/alihassan1221/service-booking-platform/internal/core/ports"
)

// BookingService implements the booking lifecycle: field validation, the
// status machine, and role/ownership authorization on every operation.
type BookingService struct {
	repo   ports.BookingRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, users ports.UserRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, users: users, logger: logger}
}

// List returns the bookings visible to the actor: plain users see their own,
// managers and admins see everything.
func (s *BookingService) List(ctx context.Context, actor ports.Actor) ([]*domain.Booking, error) {
	owner := ""
	if domain.ListBookingsScope(actor.Role) == domain.ScopeOwn {
		owner = actor.ID
	}

	bookings, err := s.repo.FindAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := s.populateOwners(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Get returns a single booking if the actor owns it or holds a staff role.
func (s *BookingService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewBooking(actor.Role, actor.ID, booking.UserID) {
		return nil, domain.ErrUnauthorized
	}
	if err := s.populateOwners(ctx, []*domain.Booking{booking}); err != nil {
		return nil, err
	}
	return booking, nil
}

// Create validates the submitted fields and persists a new booking. Status is
// forced to pending and the owner to the acting user, regardless of payload.
func (s *BookingService) Create(ctx context.Context, actor ports.Actor, input ports.CreateBookingInput) (*domain.Booking, error) {
	if !domain.CanCreateBooking(actor.Role) {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		UserID:           actor.ID,
		VehicleType:      domain.VehicleType(input.VehicleType),
		IssueDescription: input.IssueDescription,
		PreferredDate:    input.PreferredDate,
		Location:         input.Location,
		Status:           domain.StatusPending,
		CreatedAt:        now,
	}
	if err := booking.Validate(now); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.ID).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", created.ID).
		Str("user_id", actor.ID).
		Str("vehicle_type", input.VehicleType).
		Msg("booking created")

	if err := s.populateOwners(ctx, []*domain.Booking{created}); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. Fields absent from the input keep their
// prior values. A status change additionally requires a staff role; ownership
// never changes.
func (s *BookingService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanEditBooking(actor.Role, actor.ID, booking.UserID) {
		return nil, domain.ErrUnauthorized
	}

	if input.Status != nil {
		if !domain.CanChangeStatus(actor.Role) {
			return nil, domain.ErrUnauthorized
		}
		next, ok := domain.ParseBookingStatus(*input.Status)
		if !ok {
			return nil, &domain.ValidationError{Field: "status", Message: "invalid booking status"}
		}
		if booking.Status.Terminal() && next != booking.Status {
			// Accepted, but worth noticing: the lifecycle has no enforced
			// edge set so a completed booking can be reopened.
			s.logger.Warn().
				Str("booking_id", booking.ID).
				Str("from", string(booking.Status)).
				Str("to", string(next)).
				Msg("status change out of terminal state")
		}
		booking.Status = next
	}

	if input.VehicleType != nil {
		booking.VehicleType = domain.VehicleType(*input.VehicleType)
	}
	if input.IssueDescription != nil {
		booking.IssueDescription = *input.IssueDescription
	}
	if input.PreferredDate != nil {
		booking.PreferredDate = *input.PreferredDate
	}
	if input.Location != nil {
		booking.Location = *input.Location
	}

	// The past-date rule applies at submission time only; an update may keep
	// a date that has since gone by.
	if err := booking.Validate(time.Time{}); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", updated.ID).
		Str("actor_id", actor.ID).
		Str("status", string(updated.Status)).
		Msg("booking updated")

	if err := s.populateOwners(ctx, []*domain.Booking{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a booking. Owners and admins may delete; managers may not.
func (s *BookingService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanDeleteBooking(actor.Role, actor.ID, booking.UserID) {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("booking_id", id).
		Str("actor_id", actor.ID).
		Msg("booking deleted")
	return nil
}

// populateOwners attaches the owning user's public fields to each booking
// with a single batched lookup.
func (s *BookingService) populateOwners(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.UserID]; ok {
			continue
		}
		seen[b.UserID] = struct{}{}
		ids = append(ids, b.UserID)
	}

	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		if u, ok := owners[b.UserID]; ok {
			b.Owner = &domain.BookingOwner{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return nil
}

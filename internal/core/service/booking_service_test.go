package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
	"github.com/alihassan1221/service-booking-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub booking repository
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	bookings map[string]*domain.Booking
	nextID   int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	clone := *b
	clone.Owner = nil
	return &clone
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	clone := cloneBooking(b)
	clone.ID = fmt.Sprintf("b%d", r.nextID)
	r.bookings[clone.ID] = cloneBooking(clone)
	return cloneBooking(clone), nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *stubBookingRepo) FindAll(_ context.Context, ownerID string) ([]*domain.Booking, error) {
	out := []*domain.Booking{}
	for _, b := range r.bookings {
		if ownerID != "" && b.UserID != ownerID {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	return out, nil
}

func (r *stubBookingRepo) Update(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if _, ok := r.bookings[b.ID]; !ok {
		return nil, domain.ErrBookingNotFound
	}
	r.bookings[b.ID] = cloneBooking(b)
	return cloneBooking(b), nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newBookingFixture(t *testing.T) (*BookingService, *stubBookingRepo, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	repo := newStubBookingRepo()
	return NewBookingService(repo, users, discardLogger), repo, users
}

func validInput() ports.CreateBookingInput {
	return ports.CreateBookingInput{
		VehicleType:      "car",
		IssueDescription: "Engine noise on startup",
		PreferredDate:    time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		Location:         "Downtown Garage",
	}
}

func userActor(u *domain.User) ports.Actor {
	return ports.Actor{ID: u.ID, Role: u.Role}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestBookingCreate_ForcesPendingAndOwner(t *testing.T) {
	svc, repo, users := newBookingFixture(t)
	owner := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)

	created, err := svc.Create(context.Background(), userActor(owner), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.StatusPending {
		t.Errorf("expected status pending, got %s", created.Status)
	}
	if created.UserID != owner.ID {
		t.Errorf("owner must be the authenticated actor, got %s", created.UserID)
	}
	if created.Owner == nil || created.Owner.ID != owner.ID || created.Owner.Email != owner.Email {
		t.Errorf("owner must be populated in the response, got %+v", created.Owner)
	}

	stored := repo.bookings[created.ID]
	if stored.Status != domain.StatusPending || stored.UserID != owner.ID {
		t.Errorf("stored record wrong: %+v", stored)
	}
}

func TestBookingCreate_StaffRejected(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	manager := mustSeedUser(t, users, "Mia", "mia@example.com", "pw", domain.RoleManager)
	admin := mustSeedUser(t, users, "Ana", "ana@example.com", "pw", domain.RoleAdmin)

	for _, actor := range []ports.Actor{userActor(manager), userActor(admin)} {
		if _, err := svc.Create(context.Background(), actor, validInput()); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("role %s: expected ErrUnauthorized, got %v", actor.Role, err)
		}
	}
}

func TestBookingCreate_ValidationFailures(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	owner := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)

	in := validInput()
	in.VehicleType = "spaceship"
	if _, err := svc.Create(context.Background(), userActor(owner), in); !domain.IsValidation(err) {
		t.Errorf("bad vehicle type: expected validation error, got %v", err)
	}

	in = validInput()
	in.PreferredDate = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Create(context.Background(), userActor(owner), in); !domain.IsValidation(err) {
		t.Errorf("past date: expected validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List scoping
// ---------------------------------------------------------------------------

func TestBookingList_UserSeesOnlyOwn(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)
	bob := mustSeedUser(t, users, "Bob", "bob@example.com", "pw", domain.RoleUser)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), userActor(alice), validInput()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), userActor(bob), validInput()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.List(context.Background(), userActor(alice))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 bookings for alice, got %d", len(got))
	}
	for _, b := range got {
		if b.UserID != alice.ID {
			t.Errorf("user listing leaked booking owned by %s", b.UserID)
		}
	}
}

func TestBookingList_StaffSeesAll(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)
	bob := mustSeedUser(t, users, "Bob", "bob@example.com", "pw", domain.RoleUser)
	manager := mustSeedUser(t, users, "Mia", "mia@example.com", "pw", domain.RoleManager)
	admin := mustSeedUser(t, users, "Ana", "ana@example.com", "pw", domain.RoleAdmin)

	_, _ = svc.Create(context.Background(), userActor(alice), validInput())
	_, _ = svc.Create(context.Background(), userActor(bob), validInput())

	for _, actor := range []ports.Actor{userActor(manager), userActor(admin)} {
		got, err := svc.List(context.Background(), actor)
		if err != nil {
			t.Fatalf("list as %s: %v", actor.Role, err)
		}
		if len(got) != 2 {
			t.Errorf("%s: expected full set of 2, got %d", actor.Role, len(got))
		}
		for _, b := range got {
			if b.Owner == nil {
				t.Errorf("%s: owner not populated on %s", actor.Role, b.ID)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestBookingGet_Visibility(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)
	bob := mustSeedUser(t, users, "Bob", "bob@example.com", "pw", domain.RoleUser)
	manager := mustSeedUser(t, users, "Mia", "mia@example.com", "pw", domain.RoleManager)

	created, err := svc.Create(context.Background(), userActor(alice), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), userActor(alice), created.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), userActor(manager), created.ID); err != nil {
		t.Errorf("manager read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), userActor(bob), created.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("other user read: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Get(context.Background(), userActor(alice), "missing"); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("missing id: expected ErrBookingNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }

func TestBookingUpdate_UserCannotSetStatus(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)

	created, _ := svc.Create(context.Background(), userActor(alice), validInput())

	// Not even on their own booking.
	_, err := svc.Update(context.Background(), userActor(alice), created.ID, ports.UpdateBookingInput{
		Status: strPtr("approved"),
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	got, _ := svc.Get(context.Background(), userActor(alice), created.ID)
	if got.Status != domain.StatusPending {
		t.Fatalf("denial must have no side effects, status is %s", got.Status)
	}
}

func TestBookingUpdate_ManagerAnyTransition(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)
	manager := mustSeedUser(t, users, "Mia", "mia@example.com", "pw", domain.RoleManager)

	created, _ := svc.Create(context.Background(), userActor(alice), validInput())

	// The machine has no enforced edge set: every status is reachable from
	// every other, including no-ops and leaving completed.
	sequence := []string{"approved", "completed", "rejected", "rejected", "pending"}
	for _, next := range sequence {
		updated, err := svc.Update(context.Background(), userActor(manager), created.ID, ports.UpdateBookingInput{
			Status: strPtr(next),
		})
		if err != nil {
			t.Fatalf("transition to %s rejected: %v", next, err)
		}
		if string(updated.Status) != next {
			t.Fatalf("expected status %s, got %s", next, updated.Status)
		}
	}
}

func TestBookingUpdate_PartialKeepsOmittedFields(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)

	created, _ := svc.Create(context.Background(), userActor(alice), validInput())

	updated, err := svc.Update(context.Background(), userActor(alice), created.ID, ports.UpdateBookingInput{
		Location: strPtr("Uptown Garage"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Uptown Garage" {
		t.Errorf("location not updated: %s", updated.Location)
	}
	if updated.IssueDescription != created.IssueDescription {
		t.Errorf("omitted field changed: %s", updated.IssueDescription)
	}
	if updated.VehicleType != created.VehicleType {
		t.Errorf("omitted field changed: %s", updated.VehicleType)
	}
	if updated.UserID != alice.ID {
		t.Errorf("ownership must never change, got %s", updated.UserID)
	}
}

func TestBookingUpdate_NonOwnerUserRejected(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)
	bob := mustSeedUser(t, users, "Bob", "bob@example.com", "pw", domain.RoleUser)

	created, _ := svc.Create(context.Background(), userActor(alice), validInput())

	_, err := svc.Update(context.Background(), userActor(bob), created.ID, ports.UpdateBookingInput{
		Location: strPtr("Elsewhere"),
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBookingUpdate_InvalidStatusValue(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)
	manager := mustSeedUser(t, users, "Mia", "mia@example.com", "pw", domain.RoleManager)

	created, _ := svc.Create(context.Background(), userActor(alice), validInput())

	_, err := svc.Update(context.Background(), userActor(manager), created.ID, ports.UpdateBookingInput{
		Status: strPtr("cancelled"),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestBookingDelete_Rules(t *testing.T) {
	svc, _, users := newBookingFixture(t)
	alice := mustSeedUser(t, users, "Alice", "alice@example.com", "pw", domain.RoleUser)
	bob := mustSeedUser(t, users, "Bob", "bob@example.com", "pw", domain.RoleUser)
	manager := mustSeedUser(t, users, "Mia", "mia@example.com", "pw", domain.RoleManager)
	admin := mustSeedUser(t, users, "Ana", "ana@example.com", "pw", domain.RoleAdmin)

	created, _ := svc.Create(context.Background(), userActor(alice), validInput())

	if err := svc.Delete(context.Background(), userActor(bob), created.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("other user delete: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.Delete(context.Background(), userActor(manager), created.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("manager delete: expected ErrUnauthorized, got %v", err)
	}

	if err := svc.Delete(context.Background(), userActor(alice), created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	got, err := svc.List(context.Background(), userActor(admin))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("deleted booking still listed: %d records", len(got))
	}

	// Admin may delete someone else's booking.
	second, _ := svc.Create(context.Background(), userActor(alice), validInput())
	if err := svc.Delete(context.Background(), userActor(admin), second.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}

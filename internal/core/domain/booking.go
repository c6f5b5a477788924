package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// BookingStatus represents the lifecycle state of a service booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus converts a raw string into a BookingStatus, reporting
// whether it is one of the known values.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// Terminal reports whether s is the end of the expected lifecycle. The status
// machine accepts any transition driven by a privileged role; callers use this
// only to flag transitions that leave a finished booking.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted
}

// VehicleType enumerates the vehicle categories a booking may be made for.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleTruck      VehicleType = "truck"
	VehicleSUV        VehicleType = "suv"
)

// ParseVehicleType converts a raw string into a VehicleType, reporting
// whether it is one of the known values.
func ParseVehicleType(s string) (VehicleType, bool) {
	switch VehicleType(s) {
	case VehicleCar, VehicleMotorcycle, VehicleTruck, VehicleSUV:
		return VehicleType(s), true
	}
	return "", false
}

const (
	maxIssueDescriptionLen = 500
	maxLocationLen         = 100
)

// Booking is the core aggregate. UserID references the owning account and is
// immutable after creation; ownership is the sole fact authorization relies on.
type Booking struct {
	ID               string        `json:"id"`
	UserID           string        `json:"-"`
	Owner            *BookingOwner `json:"user,omitempty"`
	VehicleType      VehicleType   `json:"vehicleType"`
	IssueDescription string        `json:"issueDescription"`
	PreferredDate    time.Time     `json:"preferredDate"`
	Location         string        `json:"location"`
	Status           BookingStatus `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// BookingOwner is the populated view of the owning user attached to read
// responses (the document store keeps only the reference).
type BookingOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks the role-independent field constraints. now is the clock
// used for the preferred-date check; pass the zero time to skip it (updates
// keep historical dates valid).
func (b *Booking) Validate(now time.Time) error {
	if _, ok := ParseVehicleType(string(b.VehicleType)); !ok {
		return &ValidationError{Field: "vehicleType", Message: "please select a valid vehicle type"}
	}
	if b.IssueDescription == "" {
		return &ValidationError{Field: "issueDescription", Message: "please describe the issue"}
	}
	if utf8.RuneCountInString(b.IssueDescription) > maxIssueDescriptionLen {
		return &ValidationError{
			Field:   "issueDescription",
			Message: fmt.Sprintf("description cannot be more than %d characters", maxIssueDescriptionLen),
		}
	}
	if b.Location == "" {
		return &ValidationError{Field: "location", Message: "please add a location"}
	}
	if utf8.RuneCountInString(b.Location) > maxLocationLen {
		return &ValidationError{
			Field:   "location",
			Message: fmt.Sprintf("location cannot be more than %d characters", maxLocationLen),
		}
	}
	if b.PreferredDate.IsZero() {
		return &ValidationError{Field: "preferredDate", Message: "please select a preferred date"}
	}
	if !now.IsZero() {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if b.PreferredDate.Before(today) {
			return &ValidationError{Field: "preferredDate", Message: "preferred date cannot be in the past"}
		}
	}
	return nil
}

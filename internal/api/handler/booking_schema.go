package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type createBookingRequest struct {
	VehicleType      string `json:"vehicleType"      validate:"required,oneof=car motorcycle truck suv"`
	IssueDescription string `json:"issueDescription" validate:"required,max=500"`
	PreferredDate    string `json:"preferredDate"    validate:"required"`
	Location         string `json:"location"         validate:"required,max=100"`
}

// updateBookingRequest is a partial update: nil fields keep their prior
// values. Status is accepted here but the service rejects it for plain users.
type updateBookingRequest struct {
	VehicleType      *string `json:"vehicleType"      validate:"omitempty,oneof=car motorcycle truck suv"`
	IssueDescription *string `json:"issueDescription" validate:"omitempty,max=500"`
	PreferredDate    *string `json:"preferredDate"    validate:"omitempty"`
	Location         *string `json:"location"         validate:"omitempty,max=100"`
	Status           *string `json:"status"           validate:"omitempty,oneof=pending approved rejected completed"`
}

// parseDate accepts the date formats the clients send: a bare calendar day
// or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "preferredDate must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return t.UTC(), nil
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"echo error passthrough", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"validation", &domain.ValidationError{Field: "location", Message: "location is required"}, http.StatusBadRequest, "location is required"},
		{"booking not found", domain.ErrBookingNotFound, http.StatusNotFound, domain.ErrBookingNotFound.Error()},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, domain.ErrUserNotFound.Error()},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, domain.ErrUnauthorized.Error()},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error()},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, domain.ErrEmailTaken.Error()},
		{"admin undeletable", domain.ErrAdminUndeletable, http.StatusBadRequest, domain.ErrAdminUndeletable.Error()},
		{"unexpected", errors.New("mongo: socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Error("success must be false in the error envelope")
			}
			if body.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// A handler already wrote a response; the error handler must not write
	// a second one on top.
	if err := c.JSON(http.StatusOK, map[string]bool{"success": true}); err != nil {
		t.Fatalf("prime response: %v", err)
	}
	before := rec.Body.String()

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Body.String() != before {
		t.Error("error handler wrote over a committed response")
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alihassan1221/service-booking-platform/internal/api/metrics"
	"github.com/alihassan1221/service-booking-platform/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List handles GET /api/bookings.
//
// @Summary      List bookings visible to the actor
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Success: true, Count: len(bookings), Data: bookings})
}

// Get handles GET /api/bookings/:id.
//
// @Summary      Get a single booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: booking})
}

// Create handles POST /api/bookings.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.PreferredDate)
	if err != nil {
		return err
	}

	booking, err := h.service.Create(c.Request().Context(), actor, ports.CreateBookingInput{
		VehicleType:      req.VehicleType,
		IssueDescription: req.IssueDescription,
		PreferredDate:    date,
		Location:         req.Location,
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(string(booking.VehicleType)).Inc()
	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: booking})
}

// Update handles PUT /api/bookings/:id.
//
// @Summary      Update a booking (partial)
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "Fields to change"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateBookingInput{
		VehicleType:      req.VehicleType,
		IssueDescription: req.IssueDescription,
		Location:         req.Location,
		Status:           req.Status,
	}
	if req.PreferredDate != nil {
		date, err := parseDate(*req.PreferredDate)
		if err != nil {
			return err
		}
		input.PreferredDate = &date
	}

	booking, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}

	if req.Status != nil {
		metrics.StatusChangesTotal.WithLabelValues(*req.Status).Inc()
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: booking})
}

// Delete handles DELETE /api/bookings/:id.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: map[string]any{}})
}

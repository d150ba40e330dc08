package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/api/metrics"
	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations. The caller
// identity always comes from the request context, never from the body.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/bookings.
//
// @Summary      Book a destination
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	in, err := toBookingInput(req)
	if err != nil {
		return err
	}

	b, err := h.service.Create(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// ListMine handles GET /api/bookings.
//
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListMine(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingList(items))
}

// Get handles GET /api/bookings/:id.
//
// @Summary      Get one of my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Booking id"
// @Success      200  {object}  bookingResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.service.Get(c.Request().Context(), id, bookingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Cancel handles DELETE /api/bookings/:id.
//
// @Summary      Cancel one of my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Param        id   path  int  true  "Booking id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Cancel(c.Request().Context(), id, bookingID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAll handles GET /api/bookings/admin.
//
// @Summary      List all bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/bookings/admin [get]
func (h *BookingHandler) ListAll(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListAll(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingList(items))
}

// UpdateStatus handles PATCH /api/bookings/admin/:id/status?status=.
//
// @Summary      Force a booking status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int     true  "Booking id"
// @Param        status  query     string  true  "PENDING, CONFIRMED or CANCELLED"
// @Success      200     {object}  bookingResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/bookings/admin/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	status, err := domain.ParseBookingStatus(c.QueryParam("status"))
	if err != nil {
		return err
	}

	b, err := h.service.UpdateStatus(c.Request().Context(), id, bookingID, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/core/ports"
)

// DestinationHandler serves the destination catalogue.
type DestinationHandler struct {
	service ports.DestinationService
}

func NewDestinationHandler(service ports.DestinationService) *DestinationHandler {
	return &DestinationHandler{service: service}
}

// List handles GET /api/destinations.
//
// @Summary      List destinations
// @Tags         destinations
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Partial match on name, city or country"
// @Param        country    query     string  false  "Exact country, case-insensitive"
// @Param        minPrice   query     number  false  "Minimum price"
// @Param        maxPrice   query     number  false  "Maximum price"
// @Param        sortBy     query     string  false  "price, name or country"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {array}   destinationResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Router       /api/destinations [get]
func (h *DestinationHandler) List(c echo.Context) error {
	filter, err := toDestinationFilter(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDestinationList(items))
}

// Get handles GET /api/destinations/:id.
//
// @Summary      Get a destination
// @Tags         destinations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Destination id"
// @Success      200  {object}  destinationResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/destinations/{id} [get]
func (h *DestinationHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDestinationResponse(d))
}

// Create handles POST /api/destinations.
//
// @Summary      Create a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      destinationRequest  true  "Destination"
// @Success      201   {object}  destinationResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/destinations [post]
func (h *DestinationHandler) Create(c echo.Context) error {
	var req destinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	d, err := h.service.Create(c.Request().Context(), toDestinationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toDestinationResponse(d))
}

// Update handles PUT /api/destinations/:id. All fields are replaced.
//
// @Summary      Update a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Destination id"
// @Param        body  body      destinationRequest  true  "Destination"
// @Success      200   {object}  destinationResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/destinations/{id} [put]
func (h *DestinationHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req destinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	d, err := h.service.Update(c.Request().Context(), id, toDestinationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDestinationResponse(d))
}

// Delete handles DELETE /api/destinations/:id.
//
// @Summary      Delete a destination
// @Tags         destinations
// @Security     BearerAuth
// @Param        id   path  int  true  "Destination id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/destinations/{id} [delete]
func (h *DestinationHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/core/ports"
)

type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// List handles GET /api/favorites.
//
// @Summary      List my favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   favoriteResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFavoriteList(items))
}

// Add handles POST /api/favorites.
//
// @Summary      Save a destination
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addFavoriteRequest  true  "Destination to save"
// @Success      201   {object}  favoriteResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	f, err := h.service.Add(c.Request().Context(), id, req.DestinationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFavoriteResponse(f))
}

// Remove handles DELETE /api/favorites/:id.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Security     BearerAuth
// @Param        id   path  int  true  "Favorite id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	favoriteID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), id, favoriteID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveByDestination handles DELETE /api/favorites/by-destination/:destinationId.
//
// @Summary      Remove my favorite for a destination
// @Tags         favorites
// @Security     BearerAuth
// @Param        destinationId  path  int  true  "Destination id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/favorites/by-destination/{destinationId} [delete]
func (h *FavoriteHandler) RemoveByDestination(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	destinationID, err := paramID(c, "destinationId")
	if err != nil {
		return err
	}
	if err := h.service.RemoveByDestination(c.Request().Context(), id, destinationID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// ctxIdentity returns the caller resolved by the Identify middleware. Routes
// behind an authenticated gate always have one; the check only guards a
// handler that was mounted without its gate.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(c.Request().Context())
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

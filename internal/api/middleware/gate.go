package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/api/metrics"
	"github.com/travelplanner/booking-system/internal/core/domain"
)

// Gate enforces the static policy of a route before its handler runs. It only
// looks at the identity placed in the request context by Identify.
func Gate(policy domain.RoutePolicy) echo.MiddlewareFunc {
	label := policy.String()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var caller *domain.Identity
			if id, ok := domain.IdentityFromContext(c.Request().Context()); ok {
				caller = &id
			}

			if err := domain.Authorize(caller, policy); err != nil {
				decision := "forbidden"
				if errors.Is(err, domain.ErrUnauthenticated) {
					decision = "unauthenticated"
				}
				metrics.GateDecisionsTotal.WithLabelValues(label, decision).Inc()
				return err
			}

			metrics.GateDecisionsTotal.WithLabelValues(label, "allow").Inc()
			return next(c)
		}
	}
}

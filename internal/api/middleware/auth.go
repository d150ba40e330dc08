package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/travelplanner/booking-system/internal/api/metrics"
	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

// Identify resolves the Authorization header into a request identity and
// stores it in the request context. It never rejects a request: a missing or
// unusable token leaves the request anonymous and the route gate decides.
func Identify(resolver ports.IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()

			id, err := resolver.Resolve(ctx, req.Header.Get(echo.HeaderAuthorization))
			result := resolutionResult(err)
			metrics.IdentityResolutionsTotal.WithLabelValues(result).Inc()

			if err != nil {
				if result != "no_credentials" {
					log.Debug().
						Str("result", result).
						Str("path", c.Path()).
						Msg("request treated as anonymous")
				}
				// Shadow anything a parent context may carry.
				c.SetRequest(req.WithContext(domain.WithoutIdentity(ctx)))
				return next(c)
			}

			c.SetRequest(req.WithContext(domain.WithIdentity(ctx, id)))
			return next(c)
		}
	}
}

func resolutionResult(err error) string {
	switch {
	case err == nil:
		return "resolved"
	case errors.Is(err, domain.ErrNoCredentials):
		return "no_credentials"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	default:
		return "error"
	}
}

package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/travelplanner/booking-system/docs"
	"github.com/travelplanner/booking-system/internal/api/handler"
	"github.com/travelplanner/booking-system/internal/api/middleware"
	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth         ports.AuthService
	Resolver     ports.IdentityResolver
	Destinations ports.DestinationService
	Bookings     ports.BookingService
	Favorites    ports.FavoriteService
}

// Options tune the transport around the services.
type Options struct {
	CORSOrigins []string
	// Readiness lists the dependencies checked by /health/ready, by name.
	Readiness map[string]handler.Pinger
	Log       zerolog.Logger
}

// route binds one operation to its static authorization policy.
type route struct {
	method  string
	path    string
	policy  domain.RoutePolicy
	handler echo.HandlerFunc
}

func apiRoutes(svc Services) []route {
	auth := handler.NewAuthHandler(svc.Auth)
	destinations := handler.NewDestinationHandler(svc.Destinations)
	bookings := handler.NewBookingHandler(svc.Bookings)
	favorites := handler.NewFavoriteHandler(svc.Favorites)

	public := domain.Public()
	authenticated := domain.AuthenticatedOnly()
	admin := domain.RequiresRole(domain.RoleAdmin)

	return []route{
		{http.MethodPost, "/api/auth/register", public, auth.Register},
		{http.MethodPost, "/api/auth/login", public, auth.Login},
		{http.MethodPost, "/api/auth/logout", authenticated, auth.Logout},
		{http.MethodGet, "/api/auth/me", authenticated, auth.Me},

		{http.MethodGet, "/api/destinations", authenticated, destinations.List},
		{http.MethodGet, "/api/destinations/:id", authenticated, destinations.Get},
		{http.MethodPost, "/api/destinations", admin, destinations.Create},
		{http.MethodPut, "/api/destinations/:id", admin, destinations.Update},
		{http.MethodDelete, "/api/destinations/:id", admin, destinations.Delete},

		{http.MethodPost, "/api/bookings", authenticated, bookings.Create},
		{http.MethodGet, "/api/bookings", authenticated, bookings.ListMine},
		{http.MethodGet, "/api/bookings/admin", admin, bookings.ListAll},
		{http.MethodPatch, "/api/bookings/admin/:id/status", admin, bookings.UpdateStatus},
		{http.MethodGet, "/api/bookings/:id", authenticated, bookings.Get},
		{http.MethodDelete, "/api/bookings/:id", authenticated, bookings.Cancel},

		{http.MethodGet, "/api/favorites", authenticated, favorites.List},
		{http.MethodPost, "/api/favorites", authenticated, favorites.Add},
		{http.MethodDelete, "/api/favorites/:id", authenticated, favorites.Remove},
		{http.MethodDelete, "/api/favorites/by-destination/:destinationId", authenticated, favorites.RemoveByDestination},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)
	e.Validator = handler.NewValidator()

	// HTTP metrics live in a registry of their own so several routers can
	// coexist in one process; /metrics serves it next to the default one.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "travel",
		Registerer: reg,
	}))
	e.Use(middleware.Identify(svc.Resolver, opts.Log))

	// --- API routes, each behind its gate ---
	for _, r := range apiRoutes(svc) {
		e.Add(r.method, r.path, r.handler, middleware.Gate(r.policy))
	}

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

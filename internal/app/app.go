// Package app assembles the service from configuration: stores, token
// codec, revocation set, audit dispatcher, use cases and the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/travelplanner/booking-system/internal/api"
	"github.com/travelplanner/booking-system/internal/api/handler"
	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
	"github.com/travelplanner/booking-system/internal/core/service"
	"github.com/travelplanner/booking-system/internal/infrastructure/config"
	"github.com/travelplanner/booking-system/internal/infrastructure/db/redis"
	"github.com/travelplanner/booking-system/internal/infrastructure/queue"
	"github.com/travelplanner/booking-system/internal/infrastructure/token"
	"github.com/travelplanner/booking-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App is a fully wired service instance.
type App struct {
	cfg        *config.Config
	log        zerolog.Logger
	stores     *stores
	audit      *queue.Dispatcher
	closeRedis func() error

	Auth *service.AuthService
	Echo *echo.Echo
}

// New connects to the configured dependencies and wires the use cases. The
// audit dispatcher is started; Close stops it.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	codec, err := token.NewJWTCodec(token.Config{Secret: cfg.JWT.Secret, TTL: cfg.JWT.TTL, Issuer: cfg.JWT.Issuer})
	if err != nil {
		return nil, err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log, stores: st}
	readiness := map[string]handler.Pinger{cfg.StoreDriver: st.ping}

	// Revocation stays disabled without Redis; the interface must then be nil.
	var revocations ports.RevocationStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			_ = st.close(ctx)
			return nil, err
		}
		rs := redis.NewRevocationStore(rdb)
		revocations = rs
		readiness["redis"] = rs
		a.closeRedis = rdb.Close
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set; logout will not revoke tokens")
	}

	a.audit = queue.NewDispatcher(cfg.AuditWorkers, st.audit, logger.Component("audit"))
	a.audit.Start(ctx)

	a.Auth = service.NewAuthService(st.users, codec, revocations, a.audit, logger.Component("auth"))
	a.Echo = api.NewRouter(api.Services{
		Auth:         a.Auth,
		Resolver:     service.NewIdentityResolver(codec, revocations, logger.Component("identity")),
		Destinations: service.NewDestinationService(st.destinations, st.bookings, st.favorites, logger.Component("destinations")),
		Bookings:     service.NewBookingService(st.bookings, st.destinations, a.audit, logger.Component("bookings")),
		Favorites:    service.NewFavoriteService(st.favorites, st.destinations, a.audit, logger.Component("favorites")),
	}, api.Options{
		CORSOrigins: cfg.CORSOrigins,
		Readiness:   readiness,
		Log:         log,
	})

	return a, nil
}

// SetUserActive (de)activates an account. Tokens already issued stay valid
// until they expire or are revoked.
func (a *App) SetUserActive(ctx context.Context, email string, active bool) error {
	u, err := a.stores.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}
	return a.stores.users.SetActive(ctx, u.ID, active)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Str("store", a.cfg.StoreDriver).Msg("http server listening")
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close drains pending audit events and releases connections.
func (a *App) Close(ctx context.Context) error {
	a.audit.Close()
	var errs []error
	if a.closeRedis != nil {
		errs = append(errs, a.closeRedis())
	}
	errs = append(errs, a.stores.close(ctx))
	return errors.Join(errs...)
}

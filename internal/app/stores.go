package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/travelplanner/booking-system/internal/api/handler"
	"github.com/travelplanner/booking-system/internal/core/ports"
	"github.com/travelplanner/booking-system/internal/infrastructure/config"
	"github.com/travelplanner/booking-system/internal/infrastructure/db/memory"
	mongostore "github.com/travelplanner/booking-system/internal/infrastructure/db/mongo"
	pgstore "github.com/travelplanner/booking-system/internal/infrastructure/db/postgres"
)

// accountStore is a credential store that can also (de)activate accounts.
type accountStore interface {
	ports.CredentialStore
	SetActive(ctx context.Context, id int64, active bool) error
}

// stores bundles the repositories of one persistence driver.
type stores struct {
	users        accountStore
	destinations ports.DestinationRepository
	bookings     ports.BookingRepository
	favorites    ports.FavoriteRepository
	audit        ports.AuditRepository
	ping         handler.Pinger
	close        func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store; data is lost on exit")
		s := memory.NewStore()
		return &stores{
			users:        s.Users(),
			destinations: s.Destinations(),
			bookings:     s.Bookings(),
			favorites:    s.Favorites(),
			audit:        s.Audit(),
			ping:         s,
			close:        func(context.Context) error { return nil },
		}, nil

	case config.DriverPostgres:
		pool, err := pgstore.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")
		return &stores{
			users:        pgstore.NewUserRepository(pool),
			destinations: pgstore.NewDestinationRepository(pool),
			bookings:     pgstore.NewBookingRepository(pool),
			favorites:    pgstore.NewFavoriteRepository(pool),
			audit:        pgstore.NewAuditRepository(pool),
			ping:         pool,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &stores{
			users:        mongostore.NewUserRepository(db),
			destinations: mongostore.NewDestinationRepository(db),
			bookings:     mongostore.NewBookingRepository(db),
			favorites:    mongostore.NewFavoriteRepository(db),
			audit:        mongostore.NewAuditRepository(db),
			ping: handler.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			}),
			close: client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

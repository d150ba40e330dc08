// Package memory holds process-local repositories. They back the "memory"
// store driver used for local runs and the HTTP end-to-end tests.
package memory

import (
	"context"
	"sync"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// Store is a set of in-memory tables guarded by one lock. Values are copied
// on the way in and out so callers never share memory with the store.
type Store struct {
	mu           sync.RWMutex
	seq          map[string]int64
	users        map[int64]domain.User
	destinations map[int64]domain.Destination
	bookings     map[int64]domain.Booking
	favorites    map[int64]domain.Favorite
	audit        []domain.AuditEvent
}

func NewStore() *Store {
	return &Store{
		seq:          make(map[string]int64),
		users:        make(map[int64]domain.User),
		destinations: make(map[int64]domain.Destination),
		bookings:     make(map[int64]domain.Booking),
		favorites:    make(map[int64]domain.Favorite),
	}
}

// next returns the next id of table. Callers hold mu.
func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }
func (s *Store) Destinations() *DestinationRepository { return &DestinationRepository{s: s} }
func (s *Store) Bookings() *BookingRepository         { return &BookingRepository{s: s} }
func (s *Store) Favorites() *FavoriteRepository       { return &FavoriteRepository{s: s} }
func (s *Store) Audit() *AuditRepository              { return &AuditRepository{s: s} }

// Ping implements the readiness check; memory is always ready.
func (s *Store) Ping(context.Context) error { return nil }

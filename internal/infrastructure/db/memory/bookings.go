package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

type BookingRepository struct{ s *Store }

func (r *BookingRepository) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) FindByOwner(_ context.Context, userID int64) ([]*domain.Booking, error) {
	return r.collect(func(b domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepository) FindAll(_ context.Context) ([]*domain.Booking, error) {
	return r.collect(func(domain.Booking) bool { return true }), nil
}

// collect returns matching bookings, newest first.
func (r *BookingRepository) collect(match func(domain.Booking) bool) []*domain.Booking {
	r.s.mu.RLock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if match(b) {
			b.Destination = nil
			out = append(out, &b)
		}
	}
	r.s.mu.RUnlock()
	slices.SortFunc(out, func(a, b *domain.Booking) int { return cmp.Compare(b.ID, a.ID) })
	return out
}

func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *b
	v.Destination = nil
	if v.ID == 0 {
		v.ID = r.s.next("bookings")
	}
	r.s.bookings[v.ID] = v
	return &v, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id, ownerID int64, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.UserID != ownerID {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepository) ExistsForDestination(_ context.Context, destinationID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.bookings {
		if b.DestinationID == destinationID {
			return true, nil
		}
	}
	return false, nil
}

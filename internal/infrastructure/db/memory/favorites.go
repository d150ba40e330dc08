package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

type FavoriteRepository struct{ s *Store }

func (r *FavoriteRepository) FindByID(_ context.Context, id int64) (*domain.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.favorites[id]
	if !ok {
		return nil, domain.ErrFavoriteNotFound
	}
	return &f, nil
}

func (r *FavoriteRepository) FindByOwner(_ context.Context, userID int64) ([]*domain.Favorite, error) {
	r.s.mu.RLock()
	out := make([]*domain.Favorite, 0)
	for _, f := range r.s.favorites {
		if f.UserID == userID {
			out = append(out, &f)
		}
	}
	r.s.mu.RUnlock()
	slices.SortFunc(out, func(a, b *domain.Favorite) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *FavoriteRepository) FindByOwnerAndDestination(_ context.Context, userID, destinationID int64) (*domain.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.favorites {
		if f.UserID == userID && f.DestinationID == destinationID {
			return &f, nil
		}
	}
	return nil, domain.ErrFavoriteNotFound
}

func (r *FavoriteRepository) Create(_ context.Context, f *domain.Favorite) (*domain.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.favorites {
		if existing.UserID == f.UserID && existing.DestinationID == f.DestinationID {
			return nil, domain.ErrFavoriteExists
		}
	}
	v := *f
	v.Destination = nil
	v.ID = r.s.next("favorites")
	r.s.favorites[v.ID] = v
	return &v, nil
}

func (r *FavoriteRepository) Delete(_ context.Context, id, ownerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.favorites[id]
	if !ok || f.UserID != ownerID {
		return domain.ErrFavoriteNotFound
	}
	delete(r.s.favorites, id)
	return nil
}

func (r *FavoriteRepository) DeleteByDestination(_ context.Context, destinationID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, f := range r.s.favorites {
		if f.DestinationID == destinationID {
			delete(r.s.favorites, id)
		}
	}
	return nil
}

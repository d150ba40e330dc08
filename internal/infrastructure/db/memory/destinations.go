package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

type DestinationRepository struct{ s *Store }

func (r *DestinationRepository) FindByID(_ context.Context, id int64) (*domain.Destination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.destinations[id]
	if !ok {
		return nil, domain.ErrDestinationNotFound
	}
	return &d, nil
}

func (r *DestinationRepository) FindByIDs(_ context.Context, ids []int64) (map[int64]*domain.Destination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[int64]*domain.Destination, len(ids))
	for _, id := range ids {
		if d, ok := r.s.destinations[id]; ok {
			out[id] = &d
		}
	}
	return out, nil
}

func (r *DestinationRepository) List(_ context.Context, f ports.DestinationFilter) ([]*domain.Destination, error) {
	r.s.mu.RLock()
	var out []*domain.Destination
	search := strings.ToLower(f.Search)
	for _, d := range r.s.destinations {
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(strings.ToLower(d.City), search) &&
			!strings.Contains(strings.ToLower(d.Country), search) {
			continue
		}
		if f.Country != "" && !strings.EqualFold(d.Country, f.Country) {
			continue
		}
		if f.MinPrice != nil && d.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && d.Price > *f.MaxPrice {
			continue
		}
		out = append(out, &d)
	}
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *domain.Destination) int {
		var c int
		switch f.SortBy {
		case "price":
			c = cmp.Compare(a.Price, b.Price)
		case "name":
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case "country":
			c = cmp.Compare(strings.ToLower(a.Country), strings.ToLower(b.Country))
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if f.SortOrder == "desc" {
			return -c
		}
		return c
	})
	return out, nil
}

func (r *DestinationRepository) Create(_ context.Context, d *domain.Destination) (*domain.Destination, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *d
	v.ID = r.s.next("destinations")
	r.s.destinations[v.ID] = v
	return &v, nil
}

func (r *DestinationRepository) Update(_ context.Context, d *domain.Destination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.destinations[d.ID]; !ok {
		return domain.ErrDestinationNotFound
	}
	r.s.destinations[d.ID] = *d
	return nil
}

func (r *DestinationRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.destinations[id]; !ok {
		return domain.ErrDestinationNotFound
	}
	delete(r.s.destinations, id)
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

const maxDescriptionLen = 2000

type DestinationService struct {
	repo      ports.DestinationRepository
	bookings  ports.BookingRepository
	favorites ports.FavoriteRepository
	log       zerolog.Logger
}

func NewDestinationService(
	repo ports.DestinationRepository,
	bookings ports.BookingRepository,
	favorites ports.FavoriteRepository,
	log zerolog.Logger,
) *DestinationService {
	return &DestinationService{repo: repo, bookings: bookings, favorites: favorites, log: log}
}

// List returns the catalogue filtered and sorted as requested.
func (s *DestinationService) List(ctx context.Context, f ports.DestinationFilter) ([]*domain.Destination, error) {
	f.SortBy = strings.ToLower(strings.TrimSpace(f.SortBy))
	f.SortOrder = strings.ToLower(strings.TrimSpace(f.SortOrder))

	switch f.SortBy {
	case "", "price", "name", "country":
	default:
		return nil, fmt.Errorf("%w: sortBy must be one of price, name, country", domain.ErrInvalidInput)
	}
	switch f.SortOrder {
	case "", "asc", "desc":
	default:
		return nil, fmt.Errorf("%w: sortOrder must be asc or desc", domain.ErrInvalidInput)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, fmt.Errorf("%w: minPrice is greater than maxPrice", domain.ErrInvalidInput)
	}

	return s.repo.List(ctx, f)
}

func (s *DestinationService) Get(ctx context.Context, id int64) (*domain.Destination, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DestinationService) Create(ctx context.Context, in ports.DestinationInput) (*domain.Destination, error) {
	d, err := destinationFromInput(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("destination_id", created.ID).Msg("destination created")
	return created, nil
}

// Update replaces every writable field of an existing destination.
func (s *DestinationService) Update(ctx context.Context, id int64, in ports.DestinationInput) (*domain.Destination, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	d, err := destinationFromInput(in)
	if err != nil {
		return nil, err
	}
	d.ID = id
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a destination that no booking references, together with
// every favorite pointing at it.
func (s *DestinationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.bookings.ExistsForDestination(ctx, id)
	if err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	if inUse {
		return domain.ErrDestinationInUse
	}
	if err := s.favorites.DeleteByDestination(ctx, id); err != nil {
		return fmt.Errorf("delete destination favorites: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("destination_id", id).Msg("destination deleted")
	return nil
}

func destinationFromInput(in ports.DestinationInput) (*domain.Destination, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description exceeds %d characters", domain.ErrInvalidInput, maxDescriptionLen)
	}
	return &domain.Destination{
		Name:        name,
		Country:     strings.TrimSpace(in.Country),
		City:        strings.TrimSpace(in.City),
		Description: in.Description,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Price:       in.Price,
	}, nil
}

// attachDestinations fills the Destination snapshot of each item from one
// batched lookup. Items whose destination vanished keep a nil snapshot.
func attachDestinations[T any](
	ctx context.Context,
	repo ports.DestinationRepository,
	items []T,
	destID func(T) int64,
	set func(T, *domain.Destination),
) error {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		id := destID(it)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load destinations: %w", err)
	}
	for _, it := range items {
		set(it, found[destID(it)])
	}
	return nil
}

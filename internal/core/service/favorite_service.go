package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

type FavoriteService struct {
	favorites    ports.FavoriteRepository
	destinations ports.DestinationRepository
	audit        ports.AuditRecorder
	now          func() time.Time
	log          zerolog.Logger
}

func NewFavoriteService(
	favorites ports.FavoriteRepository,
	destinations ports.DestinationRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *FavoriteService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &FavoriteService{
		favorites:    favorites,
		destinations: destinations,
		audit:        audit,
		now:          time.Now,
		log:          log,
	}
}

func (s *FavoriteService) List(ctx context.Context, id domain.Identity) ([]*domain.Favorite, error) {
	items, err := s.favorites.FindByOwner(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	err = attachDestinations(ctx, s.destinations, items,
		func(f *domain.Favorite) int64 { return f.DestinationID },
		func(f *domain.Favorite, d *domain.Destination) { f.Destination = d },
	)
	return items, err
}

// Add saves destinationID for the caller. An existing favorite for the pair
// is reported before the destination is looked up.
func (s *FavoriteService) Add(ctx context.Context, id domain.Identity, destinationID int64) (*domain.Favorite, error) {
	_, err := s.favorites.FindByOwnerAndDestination(ctx, id.UserID, destinationID)
	switch {
	case err == nil:
		return nil, domain.ErrFavoriteExists
	case !errors.Is(err, domain.ErrFavoriteNotFound):
		return nil, err
	}

	dest, err := s.destinations.FindByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	created, err := s.favorites.Create(ctx, &domain.Favorite{UserID: id.UserID, DestinationID: dest.ID})
	if err != nil {
		return nil, err
	}
	created.Destination = dest
	return created, nil
}

// Remove deletes one of the caller's favorites by its id.
func (s *FavoriteService) Remove(ctx context.Context, id domain.Identity, favoriteID int64) error {
	f, err := s.favorites.FindByID(ctx, favoriteID)
	if err != nil {
		return err
	}
	if err := domain.AssertOwnership(id, f, domain.ScopeOwner); err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			s.audit.Record(domain.AuditEvent{
				Action:     domain.AuditOwnershipDenied,
				UserID:     id.UserID,
				ResourceID: favoriteID,
				Detail:     "favorite",
				OccurredAt: s.now().UTC(),
			})
			s.log.Warn().Int64("user_id", id.UserID).Int64("favorite_id", favoriteID).Msg("favorite access denied")
		}
		return err
	}
	return s.favorites.Delete(ctx, f.ID, f.UserID)
}

// RemoveByDestination deletes the caller's favorite for destinationID. The
// lookup is scoped to the caller, so other users' favorites are unaddressable.
func (s *FavoriteService) RemoveByDestination(ctx context.Context, id domain.Identity, destinationID int64) error {
	f, err := s.favorites.FindByOwnerAndDestination(ctx, id.UserID, destinationID)
	if err != nil {
		return err
	}
	return s.favorites.Delete(ctx, f.ID, id.UserID)
}

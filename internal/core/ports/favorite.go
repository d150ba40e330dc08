package ports

import (
	"context"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Favorite, error)
	FindByOwner(ctx context.Context, userID int64) ([]*domain.Favorite, error)
	FindByOwnerAndDestination(ctx context.Context, userID, destinationID int64) (*domain.Favorite, error)
	// Create yields domain.ErrFavoriteExists when the pair is already saved.
	Create(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error)
	// Delete removes the favorite matching both id and ownerID and returns
	// domain.ErrFavoriteNotFound when nothing matched.
	Delete(ctx context.Context, id, ownerID int64) error
	DeleteByDestination(ctx context.Context, destinationID int64) error
}

type FavoriteService interface {
	List(ctx context.Context, id domain.Identity) ([]*domain.Favorite, error)
	Add(ctx context.Context, id domain.Identity, destinationID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, id domain.Identity, favoriteID int64) error
	RemoveByDestination(ctx context.Context, id domain.Identity, destinationID int64) error
}

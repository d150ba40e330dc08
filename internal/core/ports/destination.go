package ports

import (
	"context"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// DestinationFilter carries the optional query parameters of the catalogue listing.
type DestinationFilter struct {
	Search    string   // partial, case-insensitive match on name, city or country
	Country   string   // exact, case-insensitive
	MinPrice  *float64 // inclusive
	MaxPrice  *float64 // inclusive
	SortBy    string   // "price", "name" or "country"; empty = id
	SortOrder string   // "asc" (default) or "desc"
}

// DestinationRepository defines persistence operations for destinations.
type DestinationRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Destination, error)
	// FindByIDs returns the destinations that exist, keyed by id.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Destination, error)
	List(ctx context.Context, filter DestinationFilter) ([]*domain.Destination, error)
	Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error)
	Update(ctx context.Context, d *domain.Destination) error
	Delete(ctx context.Context, id int64) error
}

// DestinationInput carries the writable fields of a destination.
type DestinationInput struct {
	Name        string
	Country     string
	City        string
	Description string
	ImageURL    string
	Price       float64
}

type DestinationService interface {
	List(ctx context.Context, filter DestinationFilter) ([]*domain.Destination, error)
	Get(ctx context.Context, id int64) (*domain.Destination, error)
	Create(ctx context.Context, in DestinationInput) (*domain.Destination, error)
	Update(ctx context.Context, id int64, in DestinationInput) (*domain.Destination, error)
	Delete(ctx context.Context, id int64) error
}

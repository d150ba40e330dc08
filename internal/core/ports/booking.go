package ports

import (
	"context"
	"time"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindByOwner(ctx context.Context, userID int64) ([]*domain.Booking, error)
	FindAll(ctx context.Context) ([]*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// UpdateStatus sets the status of the booking matching both id and
	// ownerID. It returns domain.ErrBookingNotFound when nothing matched.
	UpdateStatus(ctx context.Context, id, ownerID int64, status domain.BookingStatus) error
	ExistsForDestination(ctx context.Context, destinationID int64) (bool, error)
}

// CreateBookingInput is the body of a new booking. The owner is never part of it.
type CreateBookingInput struct {
	DestinationID int64
	StartDate     time.Time
	EndDate       time.Time
	Travelers     int
}

type BookingService interface {
	Create(ctx context.Context, id domain.Identity, in CreateBookingInput) (*domain.Booking, error)
	ListMine(ctx context.Context, id domain.Identity) ([]*domain.Booking, error)
	Get(ctx context.Context, id domain.Identity, bookingID int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id domain.Identity, bookingID int64) error
	ListAll(ctx context.Context, id domain.Identity) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id domain.Identity, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
}

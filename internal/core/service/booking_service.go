package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

// BookingService implements the booking use cases. Every operation on an
// existing booking fetches it once, asserts ownership on that value and then
// writes conditionally on the same owner.
type BookingService struct {
	bookings     ports.BookingRepository
	destinations ports.DestinationRepository
	audit        ports.AuditRecorder
	now          func() time.Time
	log          zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	destinations ports.DestinationRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *BookingService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &BookingService{
		bookings:     bookings,
		destinations: destinations,
		audit:        audit,
		now:          time.Now,
		log:          log,
	}
}

// WithClock replaces the time source.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// Create books a destination for the caller. The owner is always the caller.
func (s *BookingService) Create(ctx context.Context, id domain.Identity, in ports.CreateBookingInput) (*domain.Booking, error) {
	if in.Travelers <= 0 {
		return nil, fmt.Errorf("%w: travelers must be positive", domain.ErrInvalidInput)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", domain.ErrInvalidInput)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", domain.ErrInvalidInput)
	}

	dest, err := s.destinations.FindByID(ctx, in.DestinationID)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:        id.UserID,
		DestinationID: dest.ID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Travelers:     in.Travelers,
		Status:        domain.BookingPending,
		CreatedAt:     s.now().UTC(),
	}
	created, err := s.bookings.Create(ctx, b)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id.UserID).Msg("failed to create booking")
		return nil, err
	}
	created.Destination = dest

	s.log.Info().Int64("booking_id", created.ID).Int64("user_id", id.UserID).Msg("booking created")
	return created, nil
}

// ListMine returns the caller's bookings only.
func (s *BookingService) ListMine(ctx context.Context, id domain.Identity) ([]*domain.Booking, error) {
	items, err := s.bookings.FindByOwner(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	return items, s.hydrate(ctx, items)
}

func (s *BookingService) Get(ctx context.Context, id domain.Identity, bookingID int64) (*domain.Booking, error) {
	b, err := s.owned(ctx, id, bookingID, domain.ScopeOwner)
	if err != nil {
		return nil, err
	}
	return b, s.hydrate(ctx, []*domain.Booking{b})
}

// Cancel marks the caller's booking CANCELLED. Cancelling twice is a no-op.
func (s *BookingService) Cancel(ctx context.Context, id domain.Identity, bookingID int64) error {
	b, err := s.owned(ctx, id, bookingID, domain.ScopeOwner)
	if err != nil {
		return err
	}
	if b.Status == domain.BookingCancelled {
		return nil
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, b.UserID, domain.BookingCancelled); err != nil {
		return err
	}
	s.log.Info().Int64("booking_id", b.ID).Int64("user_id", id.UserID).Msg("booking cancelled")
	return nil
}

// ListAll returns every booking. Admin only.
func (s *BookingService) ListAll(ctx context.Context, id domain.Identity) ([]*domain.Booking, error) {
	if !id.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}
	items, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return items, s.hydrate(ctx, items)
}

// UpdateStatus forces a booking into status. It is admin-scoped: an ADMIN
// may act on any booking, anyone else only on their own.
func (s *BookingService) UpdateStatus(ctx context.Context, id domain.Identity, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	if _, err := domain.ParseBookingStatus(string(status)); err != nil {
		return nil, err
	}
	b, err := s.owned(ctx, id, bookingID, domain.ScopeAdmin)
	if err != nil {
		return nil, err
	}
	// The write is conditional on the owner observed above.
	if err := s.bookings.UpdateStatus(ctx, b.ID, b.UserID, status); err != nil {
		return nil, err
	}
	previous := b.Status
	b.Status = status

	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditBookingStatusChanged,
		UserID:     id.UserID,
		ResourceID: b.ID,
		Detail:     fmt.Sprintf("%s -> %s", previous, status),
		OccurredAt: s.now().UTC(),
	})
	return b, s.hydrate(ctx, []*domain.Booking{b})
}

// owned loads a booking and checks that id may act on it under scope.
func (s *BookingService) owned(ctx context.Context, id domain.Identity, bookingID int64, scope domain.AccessScope) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwnership(id, b, scope); err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			s.audit.Record(domain.AuditEvent{
				Action:     domain.AuditOwnershipDenied,
				UserID:     id.UserID,
				ResourceID: bookingID,
				Detail:     "booking",
				OccurredAt: s.now().UTC(),
			})
			s.log.Warn().Int64("user_id", id.UserID).Int64("booking_id", bookingID).Msg("booking access denied")
		}
		return nil, err
	}
	return b, nil
}

func (s *BookingService) hydrate(ctx context.Context, items []*domain.Booking) error {
	return attachDestinations(ctx, s.destinations, items,
		func(b *domain.Booking) int64 { return b.DestinationID },
		func(b *domain.Booking, d *domain.Destination) { b.Destination = d },
	)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

const bookingColumns = "id, user_id, destination_id, start_date, end_date, travelers, status, created_at"

type BookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b      domain.Booking
		status string
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.DestinationID, &b.StartDate, &b.EndDate, &b.Travelers, &status, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	b.StartDate = b.StartDate.UTC()
	b.EndDate = b.EndDate.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created, err := scanBooking(r.db.QueryRow(ctx,
		`INSERT INTO bookings (user_id, destination_id, start_date, end_date, travelers, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+bookingColumns,
		b.UserID, b.DestinationID, b.StartDate, b.EndDate, b.Travelers, string(b.Status), b.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return b, nil
}

// FindByOwner is always filtered by user_id; it never returns other users' bookings.
func (r *BookingRepository) FindByOwner(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY id DESC`, userID)
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id DESC`)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus only matches a booking that still belongs to ownerID.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id, ownerID int64, status domain.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2 AND user_id = $3`, string(status), id, ownerID)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ExistsForDestination(ctx context.Context, destinationID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE destination_id = $1)`, destinationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("count bookings: %w", err)
	}
	return exists, nil
}

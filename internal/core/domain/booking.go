package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus accepts the status names case-insensitively.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, s)
	}
}

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

// Booking is a reservation of a destination made by one user.
type Booking struct {
	ID            int64
	UserID        int64
	DestinationID int64
	Destination   *Destination
	StartDate     time.Time
	EndDate       time.Time
	Travelers     int
	Status        BookingStatus
	CreatedAt     time.Time
}

// OwnerID implements Owned.
func (b *Booking) OwnerID() int64 { return b.UserID }

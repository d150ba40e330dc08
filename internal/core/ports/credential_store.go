package ports

import (
	"context"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// CredentialStore defines persistence of user credentials.
// Emails are passed already normalised.
type CredentialStore interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns the ID. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

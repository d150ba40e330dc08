package ports

import (
	"context"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// RegisterInput is the DTO for self-service sign-up. It carries no role.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, id domain.Identity) error
	Me(ctx context.Context, id domain.Identity) (*domain.User, error)
}

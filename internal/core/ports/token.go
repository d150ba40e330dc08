package ports

import (
	"context"
	"time"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// TokenCodec mints and verifies signed bearer tokens. Implementations are
// pure functions of their inputs and the key given at construction.
type TokenCodec interface {
	Mint(userID int64, role domain.Role, now time.Time) (string, error)
	Verify(token string, now time.Time) (domain.TokenClaims, error)
}

// RevocationStore remembers token ids that must no longer resolve.
type RevocationStore interface {
	// Revoke marks jti as revoked for ttl; entries vanish once the token
	// would have expired anyway.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// IdentityResolver turns a raw Authorization header into an identity.
// A non-nil error means the request is anonymous; the error only names why.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (domain.Identity, error)
}

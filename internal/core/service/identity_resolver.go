package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

const bearerPrefix = "Bearer "

// IdentityResolver turns an Authorization header into a request identity.
type IdentityResolver struct {
	codec       ports.TokenCodec
	revocations ports.RevocationStore
	now         func() time.Time
	log         zerolog.Logger
}

// NewIdentityResolver returns a resolver. revocations may be nil.
func NewIdentityResolver(codec ports.TokenCodec, revocations ports.RevocationStore, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{codec: codec, revocations: revocations, now: time.Now, log: log}
}

// WithClock replaces the time source.
func (r *IdentityResolver) WithClock(now func() time.Time) *IdentityResolver {
	r.now = now
	return r
}

// Resolve never returns a partial identity: any failure yields the zero
// Identity and an error naming the reason.
func (r *IdentityResolver) Resolve(ctx context.Context, authorization string) (domain.Identity, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return domain.Identity{}, domain.ErrNoCredentials
	}

	claims, err := r.codec.Verify(authorization[len(bearerPrefix):], r.now())
	if err != nil {
		return domain.Identity{}, err
	}

	if r.revocations != nil && claims.ID != "" {
		revoked, err := r.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			r.log.Warn().Err(err).Msg("revocation lookup failed, treating request as anonymous")
			return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrTokenRevoked, err)
		}
		if revoked {
			return domain.Identity{}, domain.ErrTokenRevoked
		}
	}

	return domain.IdentityFromClaims(claims), nil
}

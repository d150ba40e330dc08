package domain

import (
	"context"
	"time"
)

// TokenClaims are the decoded fields of a verified bearer token.
type TokenClaims struct {
	ID        string
	Subject   int64
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is the caller resolved from a verified token. It lives only as
// long as the request that produced it.
type Identity struct {
	UserID    int64
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// IdentityFromClaims builds the request identity for verified claims.
func IdentityFromClaims(c TokenClaims) Identity {
	return Identity{
		UserID:    c.Subject,
		Role:      c.Role,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt,
	}
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type identityKey struct{}

type identitySlot struct {
	identity Identity
	present  bool
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identitySlot{identity: id, present: true})
}

// WithoutIdentity returns a copy of ctx that shadows any identity stored by a
// parent context, so lookups on it report anonymous.
func WithoutIdentity(ctx context.Context) context.Context {
	return context.WithValue(ctx, identityKey{}, identitySlot{})
}

// IdentityFromContext returns the identity stored in ctx, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	slot, ok := ctx.Value(identityKey{}).(identitySlot)
	if !ok || !slot.present {
		return Identity{}, false
	}
	return slot.identity, true
}

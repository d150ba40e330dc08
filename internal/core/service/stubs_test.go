package service

import (
	"context"
	"sync"
	"time"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(e domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

type stubRevocations struct {
	revoked map[string]time.Duration
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (r *stubRevocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[jti] = ttl
	return nil
}

func (r *stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[jti]
	return ok, nil
}

// stubCodec returns the configured claims or error for every token.
type stubCodec struct {
	claims domain.TokenClaims
	err    error
	seen   []time.Time
}

func (c *stubCodec) Mint(int64, domain.Role, time.Time) (string, error) { return "minted", nil }

func (c *stubCodec) Verify(_ string, now time.Time) (domain.TokenClaims, error) {
	c.seen = append(c.seen, now)
	if c.err != nil {
		return domain.TokenClaims{}, c.err
	}
	return c.claims, nil
}

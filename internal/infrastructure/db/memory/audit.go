package memory

import (
	"context"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

type AuditRepository struct{ s *Store }

func (r *AuditRepository) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *event)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *AuditRepository) Events() []domain.AuditEvent {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.AuditEvent(nil), r.s.audit...)
}

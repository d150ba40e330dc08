package postgres

import (
	"context"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository on the audit_events table.
type AuditRepository struct {
	db DB
}

func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEvent) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_events (action, user_id, email, resource_id, detail, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.Action), nullInt(e.UserID), nullString(e.Email), nullInt(e.ResourceID), nullString(e.Detail), e.OccurredAt.UTC(),
	)
	return err
}

func nullInt(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

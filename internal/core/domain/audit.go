package domain

import (
	"strconv"
	"time"
)

// AuditAction names a security-relevant event.
type AuditAction string

const (
	AuditLoginSucceeded       AuditAction = "login_succeeded"
	AuditLoginFailed          AuditAction = "login_failed"
	AuditLoginInactive        AuditAction = "login_inactive"
	AuditLogout               AuditAction = "logout"
	AuditOwnershipDenied      AuditAction = "ownership_denied"
	AuditBookingStatusChanged AuditAction = "booking_status_changed"
)

// AuditEvent is an append-only record of a security-relevant action.
type AuditEvent struct {
	Action     AuditAction
	UserID     int64  // 0 when the actor is unknown (failed login)
	Email      string // set for login events only
	ResourceID int64
	Detail     string
	OccurredAt time.Time
}

// Subject returns the key used to keep one actor's events in order.
func (e AuditEvent) Subject() string {
	if e.UserID != 0 {
		return strconv.FormatInt(e.UserID, 10)
	}
	return e.Email
}

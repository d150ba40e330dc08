package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var (
	ctx     = context.Background()
	created = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
)

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	user := &domain.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "hash", Role: domain.RoleUser, Active: true, CreatedAt: created, UpdatedAt: created}
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ann", "ann@example.com", "hash", "USER", true, created, created).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "active", "created_at", "updated_at"}).
			AddRow(int64(42), "Ann", "ann@example.com", "hash", "USER", true, created, created))

	got, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, domain.RoleUser, got.Role)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "ann@example.com", pgxmock.AnyArg(), "USER", true, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"})

	got, err := repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "hash", Role: domain.RoleUser, Active: true, CreatedAt: created, UpdatedAt: created})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserRepository_FindByEmailMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "active", "created_at", "updated_at"}))

	_, err := repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestBookingRepository_UpdateStatusIsOwnerConditional(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("CANCELLED", int64(7), int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("CANCELLED", int64(7), int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateStatus(ctx, 7, 99, domain.BookingCancelled))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 7, 42, domain.BookingCancelled), domain.ErrBookingNotFound)
}

func TestBookingRepository_FindByOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "destination_id", "start_date", "end_date", "travelers", "status", "created_at"}).
			AddRow(int64(7), int64(99), int64(3), start, end, 2, "PENDING", created))

	got, err := repo.FindByOwner(ctx, 99)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(99), got[0].UserID)
	assert.Equal(t, domain.BookingPending, got[0].Status)
	assert.Equal(t, end, got[0].EndDate)
}

func TestBookingRepository_ExistsForDestination(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsForDestination(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFavoriteRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewFavoriteRepository(mock)

	mock.ExpectQuery("INSERT INTO favorites").
		WithArgs(int64(42), int64(3)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(ctx, &domain.Favorite{UserID: 42, DestinationID: 3})
	assert.ErrorIs(t, err, domain.ErrFavoriteExists)
}

func TestFavoriteRepository_DeleteIsOwnerConditional(t *testing.T) {
	mock := newMock(t)
	repo := NewFavoriteRepository(mock)

	mock.ExpectExec("DELETE FROM favorites WHERE id").
		WithArgs(int64(5), int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(ctx, 5, 42), domain.ErrFavoriteNotFound)
}

func TestDestinationRepository_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewDestinationRepository(mock)

	mock.ExpectExec("DELETE FROM destinations").
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(ctx, 404), domain.ErrDestinationNotFound)
}

func TestAuditRepository_InsertOmitsEmptyFields(t *testing.T) {
	mock := newMock(t)
	repo := NewAuditRepository(mock)

	email := "x@example.com"
	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs("login_failed", (*int64)(nil), &email, (*int64)(nil), (*string)(nil), created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Insert(ctx, &domain.AuditEvent{Action: domain.AuditLoginFailed, Email: email, OccurredAt: created}))
}

func TestDestinationQuery(t *testing.T) {
	q, args := destinationQuery(ports.DestinationFilter{})
	assert.Equal(t, "SELECT "+destinationColumns+" FROM destinations ORDER BY id ASC", q)
	assert.Empty(t, args)

	lo := 50.0
	q, args = destinationQuery(ports.DestinationFilter{
		Search:    "100%_",
		Country:   "Spain",
		MinPrice:  &lo,
		SortBy:    "name",
		SortOrder: "desc",
	})
	assert.Equal(t,
		"SELECT "+destinationColumns+" FROM destinations"+
			" WHERE (name ILIKE $1 OR city ILIKE $1 OR country ILIKE $1)"+
			" AND lower(country) = lower($2) AND price >= $3"+
			" ORDER BY lower(name) DESC, id DESC",
		q)
	assert.Equal(t, []any{`%100\%\_%`, "Spain", 50.0}, args)

	q, _ = destinationQuery(ports.DestinationFilter{SortBy: "price; DROP TABLE users"})
	assert.Contains(t, q, "ORDER BY id ASC")
}

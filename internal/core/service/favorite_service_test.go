package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/infrastructure/db/memory"
)

func newFavoriteFixture(t *testing.T) (*FavoriteService, *memory.Store, *domain.Destination) {
	t.Helper()
	store := memory.NewStore()
	dest, err := store.Destinations().Create(ctxBg, &domain.Destination{Name: "Kyoto", Country: "Japan", Price: 300})
	require.NoError(t, err)
	svc := NewFavoriteService(store.Favorites(), store.Destinations(), nil, zerolog.Nop())
	return svc, store, dest
}

func TestFavoriteService_AddAndList(t *testing.T) {
	svc, _, dest := newFavoriteFixture(t)

	fav, err := svc.Add(ctxBg, user42, dest.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), fav.UserID)
	require.NotNil(t, fav.Destination)

	_, err = svc.Add(ctxBg, user42, dest.ID)
	assert.ErrorIs(t, err, domain.ErrFavoriteExists)

	_, err = svc.Add(ctxBg, user42, 999)
	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)

	mine, err := svc.List(ctxBg, user42)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Kyoto", mine[0].Destination.Name)

	theirs, err := svc.List(ctxBg, user99)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestFavoriteService_Add_DuplicateReportedBeforeDestinationLookup(t *testing.T) {
	svc, store, dest := newFavoriteFixture(t)

	_, err := svc.Add(ctxBg, user42, dest.ID)
	require.NoError(t, err)
	require.NoError(t, store.Destinations().Delete(ctxBg, dest.ID))

	_, err = svc.Add(ctxBg, user42, dest.ID)
	assert.ErrorIs(t, err, domain.ErrFavoriteExists)

	_, err = svc.Add(ctxBg, user99, dest.ID)
	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

func TestFavoriteService_Remove_NotOwner(t *testing.T) {
	svc, store, dest := newFavoriteFixture(t)
	fav, err := svc.Add(ctxBg, user99, dest.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(ctxBg, user42, fav.ID), domain.ErrNotOwner)
	assert.ErrorIs(t, svc.Remove(ctxBg, admin7, fav.ID), domain.ErrNotOwner)

	_, err = store.Favorites().FindByID(ctxBg, fav.ID)
	require.NoError(t, err, "denied remove must not delete")

	require.NoError(t, svc.Remove(ctxBg, user99, fav.ID))
	assert.ErrorIs(t, svc.Remove(ctxBg, user99, fav.ID), domain.ErrFavoriteNotFound)
}

func TestFavoriteService_RemoveByDestination_ScopedToCaller(t *testing.T) {
	svc, store, dest := newFavoriteFixture(t)
	_, err := svc.Add(ctxBg, user99, dest.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveByDestination(ctxBg, user42, dest.ID), domain.ErrFavoriteNotFound)

	remaining, err := store.Favorites().FindByOwner(ctxBg, 99)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	require.NoError(t, svc.RemoveByDestination(ctxBg, user99, dest.ID))
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func newStores(t *testing.T) (*InvitationStore, *GuestStore, *bolt.DB) {
	t.Helper()
	db := openTestDB(t)
	iStore, err := NewInvitationStore(db)
	require.NoError(t, err)
	gStore, err := NewGuestStore(db)
	require.NoError(t, err)
	return iStore, gStore, db
}

func TestGuestStoreCreateKeepsImportedTimestamps(t *testing.T) {
	ctx := context.Background()
	_, store, _ := newStores(t)

	created := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	guest := &model.Guest{InvitationID: uuid.New(), Name: "Ana", Passes: 2, CreatedAt: &created, UpdatedAt: &created}
	id, err := store.CreateGuest(ctx, guest)
	require.NoError(t, err)

	got, err := store.GetGuestByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.CreatedAt)
	require.NotNil(t, got.UpdatedAt)
	require.True(t, got.CreatedAt.Equal(created))
	require.True(t, got.UpdatedAt.Equal(created))
}

func TestGuestStoreListSortedByName(t *testing.T) {
	ctx := context.Background()
	_, store, _ := newStores(t)

	invID := uuid.New()
	for _, name := range []string{"Zoe", "Ana", "Mario"} {
		_, err := store.CreateGuest(ctx, &model.Guest{InvitationID: invID, Name: name, Passes: 1})
		require.NoError(t, err)
	}
	// a guest of a different invitation is invisible
	_, err := store.CreateGuest(ctx, &model.Guest{InvitationID: uuid.New(), Name: "Bob", Passes: 1})
	require.NoError(t, err)

	guests, err := store.ListGuestsByInvitation(ctx, invID)
	require.NoError(t, err)
	require.Len(t, guests, 3)
	require.Equal(t, "Ana", guests[0].Name)
	require.Equal(t, "Mario", guests[1].Name)
	require.Equal(t, "Zoe", guests[2].Name)
}

func TestGuestStoreConfirmationIdempotent(t *testing.T) {
	ctx := context.Background()
	_, store, _ := newStores(t)

	invID := uuid.New()
	id, err := store.CreateGuest(ctx, &model.Guest{InvitationID: invID, Name: "Ana Pérez", Passes: 2})
	require.NoError(t, err)

	require.NoError(t, store.SetGuestConfirmation(ctx, id, true))
	require.NoError(t, store.SetGuestConfirmation(ctx, id, true))

	guests, err := store.ListGuestsByInvitation(ctx, invID)
	require.NoError(t, err)
	require.Len(t, guests, 1, "confirming twice must not duplicate the row")
	require.True(t, guests[0].Confirmed)
}

func TestGuestStoreBatchCreate(t *testing.T) {
	ctx := context.Background()
	_, store, _ := newStores(t)

	invID := uuid.New()
	n, err := store.CreateGuests(ctx, []*model.Guest{
		{InvitationID: invID, Name: "Uno", Passes: 1},
		{InvitationID: invID, Name: "Dos", Passes: 2},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = store.CreateGuests(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestGuestStoreDeleteChecksOwnership(t *testing.T) {
	ctx := context.Background()
	iStore, gStore, _ := newStores(t)

	owner := uuid.New()
	inv := &model.Invitation{PublicID: "guests-123", UserID: owner}
	require.NoError(t, iStore.CreateInvitation(ctx, inv))

	guestID, err := gStore.CreateGuest(ctx, &model.Guest{InvitationID: inv.ID, Name: "Ana", Passes: 1})
	require.NoError(t, err)

	err = gStore.DeleteGuest(ctx, guestID, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound, "stranger delete must fail")

	require.NoError(t, gStore.DeleteGuest(ctx, guestID, owner))

	guests, err := gStore.ListGuestsByInvitation(ctx, inv.ID)
	require.NoError(t, err)
	require.Empty(t, guests)
}

func TestGuestStoreDeleteByInvitation(t *testing.T) {
	ctx := context.Background()
	_, store, _ := newStores(t)

	invID := uuid.New()
	otherID := uuid.New()
	for _, name := range []string{"a", "b", "c"} {
		_, err := store.CreateGuest(ctx, &model.Guest{InvitationID: invID, Name: name, Passes: 1})
		require.NoError(t, err)
	}
	_, err := store.CreateGuest(ctx, &model.Guest{InvitationID: otherID, Name: "keep", Passes: 1})
	require.NoError(t, err)

	require.NoError(t, store.DeleteGuestsByInvitation(ctx, invID))

	gone, err := store.ListGuestsByInvitation(ctx, invID)
	require.NoError(t, err)
	require.Empty(t, gone)

	kept, err := store.ListGuestsByInvitation(ctx, otherID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
}

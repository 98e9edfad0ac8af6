// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func openTestDB(t *testing.T) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInvitationStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewInvitationStore(openTestDB(t))
	require.NoError(t, err)

	owner := uuid.New()
	inv := &model.Invitation{
		PublicID: "V1StGXR8_Z",
		UserID:   owner,
		Data:     *model.DefaultWeddingData(),
	}
	require.NoError(t, store.CreateInvitation(ctx, inv))
	require.NotEqual(t, uuid.Nil, inv.ID)

	got, err := store.GetInvitationByPublicID(ctx, "V1StGXR8_Z")
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
	require.Equal(t, "Elena", got.Data.BrideFirstName)
	require.True(t, got.Data.WeddingDate.Equal(inv.Data.WeddingDate))
	require.Equal(t, inv.Data.ThemeColors, got.Data.ThemeColors)
}

func TestInvitationStoreCreateKeepsImportedTimestamps(t *testing.T) {
	ctx := context.Background()
	store, err := NewInvitationStore(openTestDB(t))
	require.NoError(t, err)

	// rows migrated from another backend arrive with timestamps set
	created := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	inv := &model.Invitation{PublicID: "imported-0", UserID: uuid.New(), CreatedAt: created, UpdatedAt: updated}
	require.NoError(t, store.CreateInvitation(ctx, inv))

	got, err := store.GetInvitationByPublicID(ctx, "imported-0")
	require.NoError(t, err)
	require.True(t, got.CreatedAt.Equal(created))
	require.True(t, got.UpdatedAt.Equal(updated))
}

func TestInvitationStoreGetUnknownPublicID(t *testing.T) {
	store, err := NewInvitationStore(openTestDB(t))
	require.NoError(t, err)

	_, err = store.GetInvitationByPublicID(context.Background(), "nope")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestInvitationStoreDuplicatePublicID(t *testing.T) {
	ctx := context.Background()
	store, err := NewInvitationStore(openTestDB(t))
	require.NoError(t, err)

	first := &model.Invitation{PublicID: "same-id-123", UserID: uuid.New()}
	require.NoError(t, store.CreateInvitation(ctx, first))

	second := &model.Invitation{PublicID: "same-id-123", UserID: uuid.New()}
	require.Error(t, store.CreateInvitation(ctx, second))
}

func TestInvitationStoreListSortedByCreation(t *testing.T) {
	ctx := context.Background()
	store, err := NewInvitationStore(openTestDB(t))
	require.NoError(t, err)

	owner := uuid.New()
	for _, pid := range []string{"first-0000", "second-000", "third-0000"} {
		require.NoError(t, store.CreateInvitation(ctx, &model.Invitation{PublicID: pid, UserID: owner}))
	}
	// another user's invitation must not show up
	require.NoError(t, store.CreateInvitation(ctx, &model.Invitation{PublicID: "other-0000", UserID: uuid.New()}))

	invs, err := store.ListInvitationsByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, invs, 3)
	for i := 1; i < len(invs); i++ {
		require.False(t, invs[i-1].CreatedAt.Before(invs[i].CreatedAt), "expected created-desc order")
	}
}

func TestInvitationStoreOwnershipFilter(t *testing.T) {
	ctx := context.Background()
	store, err := NewInvitationStore(openTestDB(t))
	require.NoError(t, err)

	owner := uuid.New()
	inv := &model.Invitation{PublicID: "owned-0000", UserID: owner, Data: *model.DefaultWeddingData()}
	require.NoError(t, store.CreateInvitation(ctx, inv))

	stranger := uuid.New()
	data := model.DefaultWeddingData()
	data.BrideFirstName = "Mallory"

	err = store.UpdateInvitation(ctx, inv.ID, stranger, data)
	require.True(t, errors.Is(err, model.ErrNotFound), "foreign update must look like not-found")

	err = store.DeleteInvitation(ctx, inv.ID, stranger)
	require.True(t, errors.Is(err, model.ErrNotFound), "foreign delete must look like not-found")

	// legitimate owner succeeds
	require.NoError(t, store.UpdateInvitation(ctx, inv.ID, owner, data))
	got, err := store.GetInvitationByPublicID(ctx, "owned-0000")
	require.NoError(t, err)
	require.Equal(t, "Mallory", got.Data.BrideFirstName)

	require.NoError(t, store.DeleteInvitation(ctx, inv.ID, owner))
	_, err = store.GetInvitationByPublicID(ctx, "owned-0000")
	require.ErrorIs(t, err, model.ErrNotFound)
}

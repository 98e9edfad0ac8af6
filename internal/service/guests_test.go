// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/parser/guestlist"
)

func TestGuestServiceAddAndList(t *testing.T) {
	ctx := context.Background()
	_, gStore := newTestStores(t)
	svc := NewGuestService(gStore)

	invID := uuid.New()
	added := svc.Add(ctx, invID, model.GuestInput{Name: "Ana Pérez", Passes: 2})
	require.NotNil(t, added)

	guests := svc.ListForInvitation(ctx, invID)
	require.Len(t, guests, 1)
	require.Equal(t, "Ana Pérez", guests[0].Name)
	require.Equal(t, 2, guests[0].Passes)
	require.False(t, guests[0].Confirmed)
}

func TestGuestServiceAddValidation(t *testing.T) {
	ctx := context.Background()
	_, gStore := newTestStores(t)
	svc := NewGuestService(gStore)

	invID := uuid.New()
	require.Nil(t, svc.Add(ctx, invID, model.GuestInput{Name: "   ", Passes: 2}), "blank name must be rejected")

	added := svc.Add(ctx, invID, model.GuestInput{Name: "Luis", Passes: 0})
	require.NotNil(t, added)
	require.Equal(t, 1, added.Passes, "non-positive passes default to 1")
}

func TestGuestServiceBulkImportEmptyIsNoop(t *testing.T) {
	spy := &spyGuestStore{}
	svc := NewGuestService(spy)

	require.Zero(t, svc.BulkImport(context.Background(), uuid.New(), nil))
	require.Zero(t, svc.BulkImport(context.Background(), uuid.New(), []model.GuestInput{}))
	require.Zero(t, spy.batchCalls, "empty import must not hit the store")
}

func TestGuestServiceBulkImportFromPastedText(t *testing.T) {
	ctx := context.Background()
	_, gStore := newTestStores(t)
	svc := NewGuestService(gStore)

	invID := uuid.New()
	inputs := guestlist.Parse("Familia Rodriguez,4444222459,4\nRoberto,,2\n\n,,1\nNoPasses,555,")
	require.Len(t, inputs, 3)

	require.Equal(t, 3, svc.BulkImport(ctx, invID, inputs))

	guests := svc.ListForInvitation(ctx, invID)
	require.Len(t, guests, 3)
	// name-ascending ordering
	require.Equal(t, "Familia Rodriguez", guests[0].Name)
	require.Equal(t, "NoPasses", guests[1].Name)
	require.Equal(t, "Roberto", guests[2].Name)
	require.Equal(t, 1, guests[1].Passes)
}

func TestGuestServiceConfirmationIdempotent(t *testing.T) {
	ctx := context.Background()
	_, gStore := newTestStores(t)
	svc := NewGuestService(gStore)

	invID := uuid.New()
	added := svc.Add(ctx, invID, model.GuestInput{Name: "Ana", Passes: 1})
	require.NotNil(t, added)

	require.True(t, svc.SetConfirmation(ctx, added.ID, true))
	require.True(t, svc.SetConfirmation(ctx, added.ID, true))

	guests := svc.ListForInvitation(ctx, invID)
	require.Len(t, guests, 1)
	require.True(t, guests[0].Confirmed)
}

func TestGuestServiceRemoveRequiresOwnership(t *testing.T) {
	ctx := context.Background()
	iStore, gStore := newTestStores(t)
	invitations := NewInvitationService(iStore, gStore)
	svc := NewGuestService(gStore)

	owner := uuid.New()
	inv := invitations.Create(ctx, model.DefaultWeddingData(), owner)
	require.NotNil(t, inv)

	added := svc.Add(ctx, inv.ID, model.GuestInput{Name: "Ana", Passes: 1})
	require.NotNil(t, added)

	require.False(t, svc.Remove(ctx, added.ID, uuid.New()), "stranger cannot delete")
	require.True(t, svc.Remove(ctx, added.ID, owner))
	require.Empty(t, svc.ListForInvitation(ctx, inv.ID))
}

// spyGuestStore counts batch inserts, everything else is unused.
type spyGuestStore struct {
	batchCalls int
}

func (s *spyGuestStore) CreateGuest(context.Context, *model.Guest) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *spyGuestStore) CreateGuests(_ context.Context, guests []*model.Guest) (int, error) {
	s.batchCalls++
	return len(guests), nil
}

func (s *spyGuestStore) GetGuestByID(context.Context, uuid.UUID) (*model.Guest, error) {
	return nil, model.ErrNotFound
}

func (s *spyGuestStore) ListGuestsByInvitation(context.Context, uuid.UUID) ([]*model.Guest, error) {
	return nil, nil
}

func (s *spyGuestStore) SetGuestConfirmation(context.Context, uuid.UUID, bool) error {
	return nil
}

func (s *spyGuestStore) DeleteGuest(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (s *spyGuestStore) DeleteGuestsByInvitation(context.Context, uuid.UUID) error {
	return nil
}

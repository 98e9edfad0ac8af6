// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db/kvdb"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func newTestStores(t *testing.T) (db.InvitationStore, db.GuestStore) {
	t.Helper()
	bdb, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bdb.Close() })

	iStore, err := kvdb.NewInvitationStore(bdb)
	require.NoError(t, err)
	gStore, err := kvdb.NewGuestStore(bdb)
	require.NoError(t, err)
	return iStore, gStore
}

func TestInvitationServiceCreateAndFetchRoundTrip(t *testing.T) {
	ctx := context.Background()
	iStore, gStore := newTestStores(t)
	svc := NewInvitationService(iStore, gStore)

	owner := uuid.New()
	data := model.DefaultWeddingData()
	data.BrideFirstName = "Lucía"
	data.GroomFirstName = "Marco"
	data.WeddingDate = time.Date(2025, 5, 15, 16, 0, 0, 0, time.UTC)

	created := svc.Create(ctx, data, owner)
	require.NotNil(t, created)
	require.Len(t, created.PublicID, model.PublicIDLength)

	got, err := svc.GetByPublicID(ctx, created.PublicID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Lucía", got.Data.BrideFirstName)
	require.Equal(t, "Marco", got.Data.GroomFirstName)
	require.True(t, got.Data.WeddingDate.Equal(data.WeddingDate))
	require.Equal(t, data.ThemeColors, got.Data.ThemeColors)
}

func TestInvitationServiceGetUnknownIsNotAnError(t *testing.T) {
	iStore, gStore := newTestStores(t)
	svc := NewInvitationService(iStore, gStore)

	inv, err := svc.GetByPublicID(context.Background(), "missing-id")
	require.NoError(t, err)
	require.Nil(t, inv)
}

func TestInvitationServicePublicIDSurvivesUpdate(t *testing.T) {
	ctx := context.Background()
	iStore, gStore := newTestStores(t)
	svc := NewInvitationService(iStore, gStore)

	owner := uuid.New()
	created := svc.Create(ctx, model.DefaultWeddingData(), owner)
	require.NotNil(t, created)

	data := created.Data.Clone()
	data.BrideFirstName = "changed"
	require.True(t, svc.Update(ctx, created.ID, data, owner))

	got, err := svc.GetByPublicID(ctx, created.PublicID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, created.PublicID, got.PublicID)
	require.Equal(t, "changed", got.Data.BrideFirstName)
}

func TestInvitationServiceUpdateForeignOwnerFails(t *testing.T) {
	ctx := context.Background()
	iStore, gStore := newTestStores(t)
	svc := NewInvitationService(iStore, gStore)

	created := svc.Create(ctx, model.DefaultWeddingData(), uuid.New())
	require.NotNil(t, created)

	require.False(t, svc.Update(ctx, created.ID, model.DefaultWeddingData(), uuid.New()))
	require.False(t, svc.Delete(ctx, created.ID, uuid.New()))
}

func TestInvitationServiceDeleteDetachesGuests(t *testing.T) {
	ctx := context.Background()
	iStore, gStore := newTestStores(t)
	svc := NewInvitationService(iStore, gStore)
	guests := NewGuestService(gStore)

	owner := uuid.New()
	created := svc.Create(ctx, model.DefaultWeddingData(), owner)
	require.NotNil(t, created)
	require.NotNil(t, guests.Add(ctx, created.ID, model.GuestInput{Name: "Ana", Passes: 1}))

	require.True(t, svc.Delete(ctx, created.ID, owner))
	require.Empty(t, guests.ListForInvitation(ctx, created.ID))
}

func TestInvitationServiceListForUserFailureYieldsEmpty(t *testing.T) {
	svc := NewInvitationService(&failingInvitationStore{}, nil)
	require.Empty(t, svc.ListForUser(context.Background(), uuid.New()))
}

type failingInvitationStore struct{}

var errBackendDown = errors.New("backend down")

func (f *failingInvitationStore) CreateInvitation(context.Context, *model.Invitation) error {
	return errBackendDown
}

func (f *failingInvitationStore) GetInvitationByPublicID(context.Context, string) (*model.Invitation, error) {
	return nil, errBackendDown
}

func (f *failingInvitationStore) ListInvitationsByUser(context.Context, uuid.UUID) ([]*model.Invitation, error) {
	return nil, errBackendDown
}

func (f *failingInvitationStore) UpdateInvitation(context.Context, uuid.UUID, uuid.UUID, *model.WeddingData) error {
	return errBackendDown
}

func (f *failingInvitationStore) DeleteInvitation(context.Context, uuid.UUID, uuid.UUID) error {
	return errBackendDown
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func TestUserStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewUserStore(openTestDB(t))
	require.NoError(t, err)

	user := &model.User{Email: "elena@example.com", PasswordHash: []byte("$2a$10$stub")}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	byEmail, err := store.GetUserByEmail(ctx, "elena@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "elena@example.com", byID.Email)
}

func TestUserStoreEmailTaken(t *testing.T) {
	ctx := context.Background()
	store, err := NewUserStore(openTestDB(t))
	require.NoError(t, err)

	require.NoError(t, store.CreateUser(ctx, &model.User{Email: "dup@example.com"}))
	err = store.CreateUser(ctx, &model.User{Email: "dup@example.com"})
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserStoreUnknownLookups(t *testing.T) {
	ctx := context.Background()
	store, err := NewUserStore(openTestDB(t))
	require.NoError(t, err)

	_, err = store.GetUserByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = store.GetUserByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

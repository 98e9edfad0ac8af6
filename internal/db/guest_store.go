// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

type GuestStore interface {
	CreateGuest(context.Context, *model.Guest) (uuid.UUID, error)
	// CreateGuests inserts a batch and returns how many rows were written.
	CreateGuests(context.Context, []*model.Guest) (int, error)
	GetGuestByID(context.Context, uuid.UUID) (*model.Guest, error)
	// ListGuestsByInvitation returns the invitation's guests sorted by name
	// ascending.
	ListGuestsByInvitation(context.Context, uuid.UUID) ([]*model.Guest, error)
	SetGuestConfirmation(ctx context.Context, guestID uuid.UUID, confirmed bool) error
	// DeleteGuest removes one guest, but only when the guest's invitation
	// belongs to ownerID.
	DeleteGuest(ctx context.Context, guestID, ownerID uuid.UUID) error
	DeleteGuestsByInvitation(ctx context.Context, invitationID uuid.UUID) error
}

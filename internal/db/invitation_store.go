// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

// InvitationStore persists invitation rows. Mutations take the owner id as
// part of the filter: an id the caller does not own matches zero rows and
// reports model.ErrNotFound, never a foreign row.
type InvitationStore interface {
	CreateInvitation(context.Context, *model.Invitation) error
	GetInvitationByPublicID(context.Context, string) (*model.Invitation, error)
	ListInvitationsByUser(context.Context, uuid.UUID) ([]*model.Invitation, error)
	UpdateInvitation(ctx context.Context, id, ownerID uuid.UUID, data *model.WeddingData) error
	DeleteInvitation(ctx context.Context, id, ownerID uuid.UUID) error
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

// DraftStore caches the in-progress editor draft per user. It is a
// convenience cache only: absence reports model.ErrNotFound and callers
// fall back to defaults.
type DraftStore interface {
	PutDraft(ctx context.Context, userID uuid.UUID, data *model.WeddingData) error
	GetDraft(ctx context.Context, userID uuid.UUID) (*model.WeddingData, error)
	DeleteDraft(ctx context.Context, userID uuid.UUID) error
}

// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package model

import (
	"time"

	"github.com/google/uuid"
)

// PublicIDLength is the length of the shareable short id minted for every
// invitation. The id is generated once at creation and never regenerated.
const PublicIDLength = 10

// Invitation is one persisted invitation row: a WeddingData snapshot plus
// identity, ownership and timestamps.
type Invitation struct {
	ID        uuid.UUID   `json:"id"`
	PublicID  string      `json:"public_id"`
	UserID    uuid.UUID   `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Data      WeddingData `json:"data"`
}

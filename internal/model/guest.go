// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package model

import (
	"time"

	"github.com/google/uuid"
)

// Guest is one entry on an invitation's guest list. Confirmed is the only
// field guests themselves may change, through the public invitation page.
type Guest struct {
	ID           uuid.UUID  `json:"id" form:"-"`
	InvitationID uuid.UUID  `json:"invitation_id" form:"-"`
	Name         string     `json:"name" form:"name"`
	Phone        string     `json:"phone,omitempty" form:"phone"`
	Passes       int        `json:"passes" form:"passes"`
	Confirmed    bool       `json:"confirmed" form:"confirmed"`
	CreatedAt    *time.Time `json:"created_at" form:"-"`
	UpdatedAt    *time.Time `json:"updated_at" form:"-"`
}

// GuestInput is what the add-guest form and the bulk import produce.
type GuestInput struct {
	Name   string `form:"name"`
	Phone  string `form:"phone"`
	Passes int    `form:"passes"`
}

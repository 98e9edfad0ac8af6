// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

type UserStore interface {
	// CreateUser reports model.ErrEmailTaken when the email is already used.
	CreateUser(context.Context, *model.User) error
	GetUserByEmail(context.Context, string) (*model.User, error)
	GetUserByID(context.Context, uuid.UUID) (*model.User, error)
}

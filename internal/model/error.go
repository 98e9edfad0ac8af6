// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package model

import "errors"

var (
	// ErrNotFound marks an absent row. Ownership-filtered mutations that
	// match zero rows report it too, so a foreign id is indistinguishable
	// from a missing one.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken = errors.New("email already registered")
)

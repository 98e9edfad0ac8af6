// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Package migrations embeds the goose SQL migrations for the postgres
// backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

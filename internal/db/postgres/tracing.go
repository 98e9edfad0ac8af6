// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package postgres

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db/postgres")

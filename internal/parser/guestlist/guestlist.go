// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Package guestlist parses the pasted bulk-import format: one guest per
// line, comma-separated "name,phone,passes". The input is hand-typed by
// couples, so parsing is deliberately lenient and never fails.
package guestlist

import (
	"strconv"
	"strings"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

// Parse extracts guest entries from text. Blank lines and entries with an
// empty name are dropped. A missing phone stays empty. Passes defaults to 1
// when absent, non-numeric, or not positive. There is no quoting support.
func Parse(text string) []model.GuestInput {
	var guests []model.GuestInput
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var name, phone, passesRaw string
		fields := strings.Split(line, ",")
		if len(fields) > 0 {
			name = strings.TrimSpace(fields[0])
		}
		if len(fields) > 1 {
			phone = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			passesRaw = strings.TrimSpace(fields[2])
		}

		if name == "" {
			continue
		}

		passes, err := strconv.Atoi(passesRaw)
		if err != nil || passes < 1 {
			passes = 1
		}

		guests = append(guests, model.GuestInput{
			Name:   name,
			Phone:  phone,
			Passes: passes,
		})
	}
	return guests
}

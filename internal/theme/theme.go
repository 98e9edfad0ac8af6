// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Package theme decides which color palette a page wears. The dashboard and
// editor chrome always render in the default palette; only the public
// invitation route wears the couple's chosen colors.
package theme

import (
	"strings"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

// PublicPathPrefix is the route prefix of the guest-facing invitation page.
const PublicPathPrefix = "/invitation/"

// Default is the fixed chrome palette used everywhere outside the public
// invitation page.
func Default() model.ThemeColors {
	return model.ThemeColors{
		Primary:    "#3E000C",
		Secondary:  "#D4B2A7",
		Accent:     "#B3B792",
		Background: "#E5E0D8",
	}
}

// Resolve returns the palette to apply for a request path. Only paths under
// the public invitation prefix get the invitation's own colors; every other
// route renders the default chrome regardless of active data.
func Resolve(path string, active model.ThemeColors) model.ThemeColors {
	if strings.HasPrefix(path, PublicPathPrefix) {
		return active
	}
	return Default()
}

// Preset is a named palette bundle offered in the editor's theme section.
type Preset struct {
	Name   string
	Colors model.ThemeColors
}

// Presets returns the selectable palettes, first one matching Default.
func Presets() []Preset {
	return []Preset{
		{Name: "Borgoña y Rosa", Colors: model.ThemeColors{Primary: "#3E000C", Secondary: "#D4B2A7", Accent: "#B3B792", Background: "#E5E0D8"}},
		{Name: "Azul y Dorado", Colors: model.ThemeColors{Primary: "#14213D", Secondary: "#FCA311", Accent: "#E5E5E5", Background: "#FFFFFF"}},
		{Name: "Verde y Terracota", Colors: model.ThemeColors{Primary: "#344E41", Secondary: "#A3B18A", Accent: "#DAD7CD", Background: "#F8F9FA"}},
		{Name: "Lavanda y Melocotón", Colors: model.ThemeColors{Primary: "#6B5CA5", Secondary: "#F8B195", Accent: "#F67280", Background: "#FAF3F3"}},
	}
}

// PresetByName returns the preset with the given name, or false.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

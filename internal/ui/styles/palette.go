// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the NovaMind TUI.
package styles

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SHARED SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// Rose - Errors, critical alerts, danger states
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, caution states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// PALETTES
// =============================================================================

// Palette is a named accent color set. Surface and text colors are shared;
// palettes swap the accents that give each theme its character.
type Palette struct {
	Name string

	// Primary is the main accent: assistant text, selections, borders.
	Primary lipgloss.AdaptiveColor
	// Secondary is the supporting accent: prompts, user highlights.
	Secondary lipgloss.AdaptiveColor
	// Border colors the response box frame.
	Border lipgloss.AdaptiveColor
	// Highlight marks emphasized text within responses.
	Highlight lipgloss.AdaptiveColor
}

// palettes maps theme names to their accent sets.
var palettes = map[string]Palette{
	"cosmic": {
		Name:      "Cosmic Violet",
		Primary:   lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"},
		Secondary: lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"},
		Border:    lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"},
		Highlight: lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"},
	},
	"matrix": {
		Name:      "Hacker Matrix",
		Primary:   lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"},
		Secondary: lipgloss.AdaptiveColor{Light: "#166534", Dark: "#4ADE80"},
		Border:    lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#16A34A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#052E16", Dark: "#BBF7D0"},
	},
	"sunset": {
		Name:      "Warm Sunset",
		Primary:   lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"},
		Secondary: lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"},
		Border:    lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"},
		Highlight: lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FDE68A"},
	},
	"ocean": {
		Name:      "Deep Ocean",
		Primary:   lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
		Secondary: lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"},
		Border:    lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3B82F6"},
		Highlight: lipgloss.AdaptiveColor{Light: "#164E63", Dark: "#A5F3FC"},
	},
	"dark": {
		Name:      "Dark Mode",
		Primary:   lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#D9D9D9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#B3B3B3"},
		Border:    lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4D4D4D"},
		Highlight: lipgloss.AdaptiveColor{Light: "#111827", Dark: "#FFFFFF"},
	},
	"light": {
		Name:      "Light Mode",
		Primary:   lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"},
		Secondary: lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"},
		Border:    lipgloss.AdaptiveColor{Light: "#B3B3B3", Dark: "#6B7280"},
		Highlight: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	},
}

// DefaultPaletteName is used when a requested theme does not exist.
const DefaultPaletteName = "cosmic"

// GetPalette looks up a palette by name, falling back to the default.
// The second return value reports whether the name was known.
func GetPalette(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return palettes[DefaultPaletteName], false
	}
	return p, true
}

// PaletteNames returns the available theme names, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

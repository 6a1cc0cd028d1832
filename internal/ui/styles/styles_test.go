// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the NovaMind TUI.
package styles

import "testing"

func TestGetPalette(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantKnown bool
	}{
		{"exact match", "matrix", "Hacker Matrix", true},
		{"case insensitive", "OCEAN", "Deep Ocean", true},
		{"whitespace trimmed", "  sunset  ", "Warm Sunset", true},
		{"unknown falls back", "nonexistent", "Cosmic Violet", false},
		{"empty falls back", "", "Cosmic Violet", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, known := GetPalette(tc.input)
			if p.Name != tc.wantName {
				t.Errorf("palette name = %q, want %q", p.Name, tc.wantName)
			}
			if known != tc.wantKnown {
				t.Errorf("known = %v, want %v", known, tc.wantKnown)
			}
		})
	}
}

func TestPaletteNames(t *testing.T) {
	names := PaletteNames()
	if len(names) != 6 {
		t.Fatalf("palette count = %d, want 6", len(names))
	}

	// Sorted, and the default present.
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
			break
		}
	}

	found := false
	for _, n := range names {
		if n == DefaultPaletteName {
			found = true
		}
	}
	if !found {
		t.Errorf("default palette %q missing from %v", DefaultPaletteName, names)
	}
}

func TestNewTheme(t *testing.T) {
	th := NewTheme("matrix")
	if th.Palette.Name != "Hacker Matrix" {
		t.Errorf("palette = %q, want Hacker Matrix", th.Palette.Name)
	}

	// Unknown names get the default palette rather than failing.
	th = NewTheme("bogus")
	if th.Palette.Name != "Cosmic Violet" {
		t.Errorf("fallback palette = %q, want Cosmic Violet", th.Palette.Name)
	}
}

func TestSwitchPalette(t *testing.T) {
	th := NewTheme("cosmic")

	if !th.SwitchPalette("ocean") {
		t.Fatal("switching to a known palette should succeed")
	}
	if th.Palette.Name != "Deep Ocean" {
		t.Errorf("palette = %q, want Deep Ocean", th.Palette.Name)
	}

	if th.SwitchPalette("bogus") {
		t.Error("switching to an unknown palette should fail")
	}
	if th.Palette.Name != "Deep Ocean" {
		t.Errorf("failed switch must not change palette, got %q", th.Palette.Name)
	}
}

func TestSetSize(t *testing.T) {
	th := NewTheme("dark")
	th.SetSize(120, 40)
	if th.Width != 120 || th.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", th.Width, th.Height)
	}
}

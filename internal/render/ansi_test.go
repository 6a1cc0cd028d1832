// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
package render

import "testing"

// =============================================================================
// ANSI / VISIBLE WIDTH TESTS
// =============================================================================

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"bold pair", BoldStart + "hi" + Reset, "hi"},
		{"color with params", "\x1b[38;5;201mpink\x1b[0m", "pink"},
		{"bare reset", Reset, ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripANSI(tc.input); got != tc.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "hello", 5},
		{"empty", "", 0},
		{"escapes are zero width", BoldStart + "hi" + Reset, 2},
		{"cjk doubles", "你好", 4},
		{"mixed cjk ascii", "ab你好", 6},
		{"emoji doubles", "🎉", 2},
		{"styled cjk", BoldStart + "世界" + Reset, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleWidth(tc.input); got != tc.want {
				t.Errorf("VisibleWidth(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
package render

import (
	"strings"
	"testing"
)

// =============================================================================
// BOX LAYOUT TESTS
// =============================================================================

func TestInnerWidth(t *testing.T) {
	tests := []struct {
		name     string
		boxWidth int
		term     int
		want     int
	}{
		{"default box on wide terminal", 70, 120, 63},
		{"box shrunk to terminal", 70, 60, 49},
		{"unknown terminal", 70, 0, 63},
		{"clamped to minimum", 20, 120, 20},
		{"tiny terminal clamped", 70, 10, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := InnerWidth(tc.boxWidth, tc.term); got != tc.want {
				t.Errorf("InnerWidth(%d, %d) = %d, want %d", tc.boxWidth, tc.term, got, tc.want)
			}
		})
	}
}

func TestPadLine_ExactWidth(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"plain ascii", "hello"},
		{"empty line", ""},
		{"styled text", BoldStart + "bold" + Reset},
		{"cjk", "你好世界"},
		{"emoji", "done 🎉"},
		{"styled cjk", BoldStart + "漢字" + Reset + " rest"},
	}

	const inner = 30
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			padded := PadLine(tc.line, inner)
			if got := VisibleWidth(padded); got != inner {
				t.Errorf("visible width after padding = %d, want %d (%q)", got, inner, padded)
			}
			if !strings.HasPrefix(padded, tc.line) {
				t.Errorf("padding must only append: %q", padded)
			}
		})
	}
}

func TestPadLine_NoNegativePadding(t *testing.T) {
	line := strings.Repeat("x", 40)
	padded := PadLine(line, 10)
	if padded != line {
		t.Errorf("overwide line must be returned unchanged, got %q", padded)
	}
}

func TestLayout_AllLinesExactInnerWidth(t *testing.T) {
	text := "This is a **bold** statement with some 漢字 and a fairly long sentence to wrap."
	lines, inner := Layout(text, 70, 100)

	if inner != 63 {
		t.Errorf("inner width = %d, want 63", inner)
	}
	for i, line := range lines {
		if got := VisibleWidth(line); got != inner {
			t.Errorf("line %d visible width = %d, want %d (%q)", i, got, inner, line)
		}
	}
}

func TestLayout_ConvertsEmphasis(t *testing.T) {
	lines, _ := Layout("make it **bold**", 70, 100)
	joined := strings.Join(lines, "\n")

	if strings.Contains(joined, "**") {
		t.Error("literal ** must not survive layout")
	}
	if !strings.Contains(joined, BoldStart) {
		t.Error("bold escape missing from layout output")
	}
}

func TestLayout_ContentPreserved(t *testing.T) {
	// Rendering never deletes content: every word of the input appears in
	// the output in order.
	text := "alpha beta gamma delta epsilon zeta eta theta"
	lines, _ := Layout(text, 30, 80)

	var words []string
	for _, line := range lines {
		words = append(words, strings.Fields(StripANSI(line))...)
	}
	want := strings.Fields(text)
	if len(words) != len(want) {
		t.Fatalf("word count changed: got %v want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, words[i], want[i])
		}
	}
}

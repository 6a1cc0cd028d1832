// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
package render

import (
	"strings"
	"testing"
)

// =============================================================================
// WIDTH-AWARE WRAP TESTS
// =============================================================================

// requireWithinWidth asserts the wrapper's core invariant: every line fits,
// except a line holding a single word that is itself too wide.
func requireWithinWidth(t *testing.T, lines []string, width int) {
	t.Helper()
	for i, line := range lines {
		w := VisibleWidth(line)
		if w <= width {
			continue
		}
		if !strings.Contains(strings.TrimSpace(line), " ") {
			continue // single overlong word, allowed by contract
		}
		t.Errorf("line %d exceeds width %d (visible %d): %q", i, width, w, line)
	}
}

func TestWrap_ShortTextSingleLine(t *testing.T) {
	lines := Wrap("Hello", 10)
	if len(lines) != 1 || lines[0] != "Hello" {
		t.Errorf("Wrap(short) = %#v", lines)
	}
}

func TestWrap_WordsNeverSplit(t *testing.T) {
	lines := Wrap("Hello world foo bar", 10)
	requireWithinWidth(t, lines, 10)

	// No word may be split across output lines: rejoining on spaces must
	// reproduce the original word sequence.
	rejoined := strings.Fields(strings.Join(lines, " "))
	want := []string{"Hello", "world", "foo", "bar"}
	if len(rejoined) != len(want) {
		t.Fatalf("words were split: %#v", lines)
	}
	for i := range want {
		if rejoined[i] != want[i] {
			t.Errorf("word %d = %q, want %q (lines %#v)", i, rejoined[i], want[i], lines)
		}
	}
}

func TestWrap_ExactFit(t *testing.T) {
	lines := Wrap("1234567890", 10)
	if len(lines) != 1 || lines[0] != "1234567890" {
		t.Errorf("exact-fit word should stay on one line: %#v", lines)
	}
}

func TestWrap_PreservesBlankLines(t *testing.T) {
	lines := Wrap("para one\n\npara two", 40)
	want := []string{"para one", "", "para two"}
	if len(lines) != len(want) {
		t.Fatalf("Wrap = %#v, want %#v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrap_ForceBreaksOverlongWord(t *testing.T) {
	word := strings.Repeat("x", 25)
	lines := Wrap(word, 10)

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines for 25-char word at width 10, got %#v", lines)
	}
	for i, line := range lines {
		if VisibleWidth(line) > 10 {
			t.Errorf("forced-break line %d too wide: %q", i, line)
		}
	}
	if strings.Join(lines, "") != word {
		t.Error("forced break must not lose characters")
	}
}

func TestWrap_ForceBreakRespectsEscapes(t *testing.T) {
	// A styled overlong word: the escape sequences must survive intact and
	// never be cut mid-sequence.
	word := BoldStart + strings.Repeat("a", 15) + Reset
	lines := Wrap(word, 10)

	joined := strings.Join(lines, "")
	if StripANSI(joined) != strings.Repeat("a", 15) {
		t.Errorf("content mangled: %q", joined)
	}
	if !strings.Contains(joined, BoldStart) || !strings.Contains(joined, Reset) {
		t.Errorf("escape sequences lost: %q", joined)
	}
	for i, line := range lines {
		if VisibleWidth(line) > 10 {
			t.Errorf("line %d too wide: %q", i, line)
		}
		// A split escape would leave a bare ESC byte at a line edge.
		if strings.Count(line, "\x1b") != len(sgrPattern.FindAllString(line, -1)) {
			t.Errorf("line %d contains a split escape sequence: %q", i, line)
		}
	}
}

func TestWrap_DoubleWidthCharacters(t *testing.T) {
	// Ten CJK chars are twenty columns; at width 10 they occupy two lines
	// of five characters, not one line of ten.
	lines := Wrap(strings.Repeat("漢", 10), 10)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %#v", lines)
	}
	for i, line := range lines {
		if VisibleWidth(line) != 10 {
			t.Errorf("line %d visible width = %d, want 10", i, VisibleWidth(line))
		}
	}
}

func TestWrap_DoubleWidthNoOverflowAtOddBudget(t *testing.T) {
	// With an odd width a double-width char cannot straddle the boundary;
	// the line must stop one column short rather than overflow.
	lines := Wrap(strings.Repeat("漢", 5), 5)
	requireWithinWidth(t, lines, 5)
	for i, line := range lines {
		if VisibleWidth(line) > 5 {
			t.Errorf("line %d overflows: %q", i, line)
		}
	}
}

func TestWrap_NonPositiveWidthFallsBack(t *testing.T) {
	text := strings.Repeat("word ", 30)

	for _, width := range []int{0, -5} {
		lines := Wrap(text, width)
		if len(lines) < 2 {
			t.Errorf("width %d should fall back and wrap, got %d line(s)", width, len(lines))
		}
		requireWithinWidth(t, lines, FallbackWidth)
	}
}

func TestWrap_MixedParagraphsAndLongWords(t *testing.T) {
	text := "short words here\n\n" + strings.Repeat("z", 30) + " tail"
	lines := Wrap(text, 12)
	requireWithinWidth(t, lines, 12)

	if StripANSI(strings.Join(lines, "")) == "" {
		t.Fatal("content lost")
	}
	// The blank paragraph separator must survive.
	found := false
	for _, line := range lines {
		if line == "" {
			found = true
		}
	}
	if !found {
		t.Error("paragraph break lost")
	}
}

func TestWrap_EmptyInput(t *testing.T) {
	lines := Wrap("", 10)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("Wrap(\"\") = %#v, want single empty line", lines)
	}
}

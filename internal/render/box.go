// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
package render

import "strings"

// =============================================================================
// BOX LAYOUT
// =============================================================================

const (
	// DefaultBoxWidth is the standard outer width of a response box.
	DefaultBoxWidth = 70

	// MinInnerWidth is the floor for the content area; below this, wrapped
	// prose degenerates into a word per line.
	MinInnerWidth = 20

	// chromeWidth is the number of columns consumed by border glyphs and
	// padding on the left and right of each content line.
	chromeWidth = 7

	// terminalMargin keeps the box off the terminal's right edge.
	terminalMargin = 4
)

// InnerWidth computes the fixed content width for a box of the given outer
// width on a terminal of the given width. The box is shrunk to fit the
// terminal, the chrome overhead is subtracted, and the result is clamped to
// MinInnerWidth. A non-positive terminal width means "unknown" and applies
// no terminal constraint.
func InnerWidth(boxWidth, termWidth int) int {
	actual := boxWidth
	if termWidth > 0 && actual > termWidth-terminalMargin {
		actual = termWidth - terminalMargin
	}

	inner := actual - chromeWidth
	if inner < MinInnerWidth {
		inner = MinInnerWidth
	}
	return inner
}

// PadLine right-pads a line with spaces so that its visible width plus the
// padding equals innerWidth exactly. A right border glyph printed immediately
// after the result aligns across all lines, regardless of escape sequences
// or double-width characters in the content.
func PadLine(line string, innerWidth int) string {
	padding := innerWidth - VisibleWidth(line)
	if padding <= 0 {
		return line
	}
	return line + strings.Repeat(" ", padding)
}

// Layout prepares sanitized text for display inside a box: converts bold
// emphasis, wraps to the computed inner width, and pads every line to that
// width. Returns the padded lines and the inner width used.
func Layout(text string, boxWidth, termWidth int) ([]string, int) {
	inner := InnerWidth(boxWidth, termWidth)

	lines := Wrap(ConvertBold(text), inner)
	for i := range lines {
		lines[i] = PadLine(lines[i], inner)
	}
	return lines, inner
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// WIDTH-AWARE WORD WRAP
// =============================================================================

// FallbackWidth is used when the requested wrap width is not positive.
const FallbackWidth = 40

// Wrap breaks text into lines of at most width visible columns.
//
// Words (space-delimited tokens) are never split across lines unless a
// single word's visible width exceeds the target width, in which case the
// word is force-broken at the last position that still fits. Escape
// sequences are never split and contribute no width. Blank input lines are
// preserved as empty output lines so paragraph breaks survive.
//
// A width of zero or less falls back to FallbackWidth.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = FallbackWidth
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return lines
}

// wrapParagraph wraps a single paragraph (no newlines) to the given width.
func wrapParagraph(paragraph string, width int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
	}

	for _, word := range strings.Fields(paragraph) {
		wordWidth := VisibleWidth(word)

		gap := 0
		if curWidth > 0 {
			gap = 1
		}

		if curWidth+gap+wordWidth <= width {
			if gap > 0 {
				cur.WriteByte(' ')
				curWidth++
			}
			cur.WriteString(word)
			curWidth += wordWidth
			continue
		}

		// Word does not fit: flush the accumulated line first, then place
		// the word, force-breaking it if it alone exceeds the width.
		flush()

		if wordWidth > width {
			remaining := word
			for VisibleWidth(remaining) > width {
				cut := breakPoint(remaining, width)
				lines = append(lines, remaining[:cut])
				remaining = remaining[cut:]
			}
			cur.WriteString(remaining)
			curWidth = VisibleWidth(remaining)
		} else {
			cur.WriteString(word)
			curWidth = wordWidth
		}
	}

	flush()
	return lines
}

// breakPoint returns the byte offset at which to force-break a word so the
// prefix's visible width does not exceed maxWidth. Escape sequences are
// stepped over whole; a break never lands inside one. If even the first
// character is too wide (maxWidth 1 against a double-width rune), that
// character is taken anyway so the caller always makes progress.
func breakPoint(word string, maxWidth int) int {
	width := 0
	i := 0

	for i < len(word) {
		if word[i] == 0x1b {
			if loc := sgrPattern.FindStringIndex(word[i:]); loc != nil && loc[0] == 0 {
				i += loc[1]
				continue
			}
		}

		r, size := utf8.DecodeRuneInString(word[i:])
		rw := runewidth.RuneWidth(r)
		if width+rw > maxWidth {
			break
		}
		width += rw
		i += size
	}

	if i == 0 {
		// Nothing fit. Consume one rune so the loop terminates.
		_, size := utf8.DecodeRuneInString(word)
		i = size
	}
	return i
}

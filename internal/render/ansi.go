// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
package render

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// ANSI HANDLING AND VISIBLE WIDTH
// =============================================================================

// SGR terminal control sequences.
const (
	BoldStart = "\x1b[1m"
	Reset     = "\x1b[0m"
)

// sgrPattern matches SGR escape sequences: the CSI introducer, numeric
// parameters separated by semicolons, and the final 'm'. These sequences
// occupy zero display columns.
var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes all SGR escape sequences from text.
func StripANSI(text string) string {
	return sgrPattern.ReplaceAllString(text, "")
}

// VisibleWidth returns the number of terminal columns the text occupies.
// Escape sequences count for zero; double-width characters (CJK, most emoji)
// count for two. This is the width function every layout decision in this
// package is based on.
func VisibleWidth(text string) int {
	return runewidth.StringWidth(StripANSI(text))
}

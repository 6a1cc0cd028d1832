// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
package textproc

import "regexp"

// =============================================================================
// FINAL ANSWER EXTRACTION
// =============================================================================

// finalAnswerPattern matches a "Final Answer:" marker at the start of any
// line, case-insensitively, along with the whitespace that follows the colon.
var finalAnswerPattern = regexp.MustCompile(`(?im)^final answer:\s*`)

// ExtractFinalAnswer truncates leading chain-of-thought. If the text contains
// a "Final Answer:" marker line, everything up to and including the marker is
// discarded; otherwise the text passes through unchanged.
//
// Deliberately aggressive: any prose before the marker is lost, even if it
// was not reasoning. Models that emit the marker put the user-facing content
// after it, so losing the preamble is the safer trade.
func ExtractFinalAnswer(text string) string {
	loc := finalAnswerPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}

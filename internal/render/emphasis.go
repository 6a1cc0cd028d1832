// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
package render

import "regexp"

// =============================================================================
// MARKDOWN BOLD CONVERSION
// =============================================================================

// boldPattern matches a non-greedy, non-nested **bold** span within a single
// line. This is deliberately the only markdown syntax the pipeline converts;
// everything else the model emits is displayed as written.
var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// ConvertBold replaces every non-overlapping **span** with the span wrapped
// in ANSI bold/reset. Unmatched or unbalanced asterisks are left untouched.
func ConvertBold(text string) string {
	return boldPattern.ReplaceAllString(text, BoldStart+"$1"+Reset)
}

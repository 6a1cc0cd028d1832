// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
package textproc

import (
	"regexp"
	"strings"
)

// =============================================================================
// SCAFFOLDING TOKEN REMOVAL
// =============================================================================

// DefaultStripTokens lists the literal serving-template markers removed from
// every completion. Covers ChatML, Llama/Mistral instruction brackets, and
// sequence-boundary tokens. Longer tokens come first so that
// "<|im_start|>assistant" is removed before the bare "<|im_start|>" marker
// would split it.
var DefaultStripTokens = []string{
	"<|im_start|>system",
	"<|im_start|>user",
	"<|im_start|>assistant",
	"<|im_start|>",
	"<|im_end|>",
	"<|im_sep|>",
	"[INST]",
	"[/INST]",
	"<<SYS>>",
	"<</SYS>>",
	"<s>",
	"</s>",
	"<|end|>",
	"<|assistant|>",
}

var (
	// runNewlines matches 3 or more consecutive newlines.
	runNewlines = regexp.MustCompile(`\n{3,}`)

	// runSpaces matches 2 or more consecutive spaces.
	runSpaces = regexp.MustCompile(` {2,}`)
)

// StripTokens removes every literal occurrence of each scaffolding token,
// then collapses the whitespace gaps the removals leave behind: runs of 3+
// newlines become exactly 2, runs of 2+ spaces become 1. The result is
// trimmed of leading and trailing whitespace.
//
// Empty input returns empty output; there are no error conditions.
func StripTokens(text string, tokens []string) string {
	if text == "" {
		return ""
	}

	for _, tok := range tokens {
		text = strings.ReplaceAll(text, tok, "")
	}

	text = runNewlines.ReplaceAllString(text, "\n\n")
	text = runSpaces.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

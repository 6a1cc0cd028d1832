// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
package textproc

import (
	"regexp"
	"strings"
)

// =============================================================================
// LINE FILTER
// =============================================================================

// fenceState tracks whether the line iterator is inside a fenced code block.
// Modeled as an explicit two-state machine rather than a boolean so the
// per-line transitions are reviewable.
type fenceState int

const (
	outsideFence fenceState = iota
	insideFence
)

// codeFence is the delimiter that toggles fenceState. A fence line may carry
// a language tag ("```python"), so matching is prefix-based.
const codeFence = "```"

// DefaultForbiddenPhrases lists scaffolding markers that cause a line to be
// dropped entirely. Most match only at the start of a (trimmed) line; the
// entries in anywhereMarkers match anywhere within it.
var DefaultForbiddenPhrases = []string{
	"The user is asking",
	"System:",
	"Developer:",
	"Instruction:",
	"You are ChatGPT",
	"You are an AI",
	"<|im_start|>",
	"<|im_end|>",
	"----",
	"[SUGGESTION]",
	"[THOUGHT]",
	"[DEBUG]",
}

// anywhereMarkers are forbidden phrases that poison a line no matter where
// they appear. A leaked template marker mid-line is just as much scaffolding
// as one at the start.
var anywhereMarkers = map[string]bool{
	"<|im_start|>": true,
	"<|im_end|>":   true,
	"[DEBUG]":      true,
	"[THOUGHT]":    true,
}

// DefaultRoleNames lists the speaker names recognized as role prefixes.
// A line like "Assistant: Hello" keeps only "Hello"; a bare "Assistant" line
// is dropped. Matching is case-insensitive.
var DefaultRoleNames = []string{
	"System",
	"Assistant",
	"User",
	"NovaMind",
	"AI",
	"Model",
}

// compileRolePattern builds the role-prefix matcher for a set of role names:
// the name at line start, followed by a colon (with optional spaces) or
// nothing but trailing whitespace.
func compileRolePattern(roles []string) *regexp.Regexp {
	quoted := make([]string, len(roles))
	for i, r := range roles {
		quoted[i] = regexp.QuoteMeta(r)
	}
	return regexp.MustCompile(`(?i)^(` + strings.Join(quoted, "|") + `)(:\s*|\s*$)`)
}

// FilterLines removes scaffolding lines from token-stripped text.
//
// Each line is classified in documented order:
//
//  1. Code-fence delimiters toggle the fence state and are always kept.
//  2. Inside a fence, every line is kept verbatim.
//  3. Blank lines are kept (paragraph spacing).
//  4. Lines matching a forbidden phrase are dropped. This check precedes
//     the role-prefix check, so a line matching both is dropped.
//  5. Lines starting with a role prefix keep only the remaining content;
//     if nothing remains, the line is dropped.
//  6. Everything else is kept unmodified.
//
// Each call starts outside any code block; fence state never leaks between
// invocations.
func (c Config) FilterLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	state := outsideFence

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, codeFence) {
			if state == outsideFence {
				state = insideFence
			} else {
				state = outsideFence
			}
			kept = append(kept, line)
			continue
		}

		if state == insideFence {
			kept = append(kept, line)
			continue
		}

		if trimmed == "" {
			kept = append(kept, line)
			continue
		}

		if c.isForbidden(trimmed) {
			continue
		}

		if loc := c.rolePattern.FindStringIndex(trimmed); loc != nil {
			content := trimmed[loc[1]:]
			if strings.TrimSpace(content) != "" {
				kept = append(kept, content)
			}
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// isForbidden reports whether a trimmed line matches any forbidden phrase.
// Case-insensitive; start-of-line match for ordinary phrases, anywhere in
// the line for the anywhereMarkers set.
func (c Config) isForbidden(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, phrase := range c.ForbiddenPhrases {
		lp := strings.ToLower(phrase)
		if !strings.Contains(lower, lp) {
			continue
		}
		if strings.HasPrefix(lower, lp) || anywhereMarkers[phrase] {
			return true
		}
	}
	return false
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
package textproc

import "strings"

// =============================================================================
// REPETITION COLLAPSING
// =============================================================================

// Thresholds holds the tuning constants for repetition detection. The
// defaults are inherited from field experience with decoding loops and are
// approximate by nature; treat them as tunable, not as exact semantics.
type Thresholds struct {
	// MinWords is the minimum word count before the whole-text halves/thirds
	// check runs at all. Short answers repeat words legitimately.
	MinWords int

	// MinSegment is the minimum normalized length (in runes) a half or third
	// must have before prefix comparison is trusted.
	MinSegment int

	// HalfPrefix is how many leading runes of each half are compared when the
	// halves are not byte-identical.
	HalfPrefix int

	// ThirdPrefix is how many leading runes of each third are compared.
	ThirdPrefix int
}

// DefaultThresholds returns the standard tuning constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinWords:    20,
		MinSegment:  30,
		HalfPrefix:  100,
		ThirdPrefix: 80,
	}
}

// normalize lowercases a string and collapses internal whitespace, producing
// the canonical form used for duplicate comparison.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// runePrefix returns the first n runes of s (all of s if shorter).
func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CollapseRepetition removes content the same message repeats verbatim, a
// failure mode of sampling-based decoding. Three checks run in order:
//
//  1. Line-level dedup: only the first occurrence of each normalized
//     non-blank line survives; consecutive blank lines collapse to one.
//  2. If at most one non-blank line remains, that text is re-examined at
//     sentence granularity (split on . ! ?) with the same first-wins rule.
//  3. As a final safety net on texts longer than MinWords words, the
//     normalized first half is compared to the second half (exact, or by
//     HalfPrefix-rune prefix when both halves exceed MinSegment); failing
//     that, the thirds are compared pairwise by ThirdPrefix-rune prefix.
//     A match truncates to the non-repeated prefix.
//
// Line-level dedup catches whole-line loops, the common case. The sentence
// and proportional checks catch single-paragraph repeats that line splitting
// cannot see.
func CollapseRepetition(text string, th Thresholds) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	unique := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))

	for _, line := range lines {
		norm := normalize(line)
		if norm != "" {
			if !seen[norm] {
				unique = append(unique, line)
				seen[norm] = true
			}
			continue
		}
		// Blank line: keep for paragraph spacing, but never two in a row.
		if len(unique) == 0 || strings.TrimSpace(unique[len(unique)-1]) != "" {
			unique = append(unique, line)
		}
	}

	nonBlank := 0
	for _, line := range unique {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}

	text = strings.Join(unique, "\n")
	if nonBlank <= 1 {
		text = collapseSentences(text)
	}

	words := strings.Fields(text)
	if len(words) > th.MinWords {
		if collapsed, ok := collapseHalves(words, th); ok {
			return collapsed
		}
		text = collapseThirds(words, th, text)
	}

	return strings.TrimSpace(text)
}

// collapseSentences deduplicates at sentence granularity within a single
// paragraph. Sentences are delimited inclusively by '.', '!', or '?';
// a trailing unterminated fragment is appended if not already seen.
func collapseSentences(text string) string {
	var sentences []string
	seen := make(map[string]bool)
	var cur strings.Builder

	for _, r := range text {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentence := strings.TrimSpace(cur.String())
			cur.Reset()
			if sentence == "" {
				continue
			}
			norm := normalize(sentence)
			if !seen[norm] {
				sentences = append(sentences, sentence)
				seen[norm] = true
			}
		}
	}

	if rest := strings.TrimSpace(cur.String()); rest != "" {
		if !seen[normalize(rest)] {
			sentences = append(sentences, rest)
		}
	}

	if len(sentences) == 0 {
		return text
	}
	return strings.Join(sentences, " ")
}

// collapseHalves truncates to the first half when the second half duplicates
// it. Returns the truncated text and true on a match.
func collapseHalves(words []string, th Thresholds) (string, bool) {
	half := len(words) / 2
	part1 := strings.ToLower(strings.Join(words[:half], " "))
	part2 := strings.ToLower(strings.Join(words[half:half*2], " "))

	if len([]rune(part1)) <= th.MinSegment {
		return "", false
	}

	exact := part1 == part2
	prefixMatch := len([]rune(part1)) > th.HalfPrefix &&
		runePrefix(part1, th.HalfPrefix) == runePrefix(part2, th.HalfPrefix)

	if exact || prefixMatch {
		return strings.TrimSpace(strings.Join(words[:half], " ")), true
	}
	return "", false
}

// collapseThirds compares the thirds pairwise by prefix and truncates to the
// non-repeated portion on a match; otherwise the input text is returned.
func collapseThirds(words []string, th Thresholds, text string) string {
	third := len(words) / 3
	if third == 0 {
		return text
	}

	first := strings.ToLower(strings.Join(words[:third], " "))
	var second, last string
	if len(words) >= third*2 {
		second = strings.ToLower(strings.Join(words[third:third*2], " "))
	}
	if len(words) >= third*3 {
		last = strings.ToLower(strings.Join(words[third*2:third*3], " "))
	}

	if first == "" || second == "" {
		return text
	}
	if len([]rune(first)) <= th.MinSegment || len([]rune(second)) <= th.MinSegment {
		return text
	}

	if runePrefix(first, th.ThirdPrefix) == runePrefix(second, th.ThirdPrefix) {
		return strings.Join(words[:third], " ")
	}
	if last != "" && runePrefix(second, th.ThirdPrefix) == runePrefix(last, th.ThirdPrefix) {
		return strings.Join(words[:third*2], " ")
	}
	return text
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// REPETITION COLLAPSING TESTS
// =============================================================================

func TestCollapseRepetition_DuplicateLines(t *testing.T) {
	input := "Hello there!\nHello there!\nHello there!"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, "Hello there!", got)
}

func TestCollapseRepetition_NormalizedLineComparison(t *testing.T) {
	// Case and internal whitespace differences still count as duplicates.
	input := "Hello   World\nhello world\nHELLO WORLD"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, "Hello   World", got)
}

func TestCollapseRepetition_KeepsDistinctLines(t *testing.T) {
	input := "First line.\nSecond line.\nThird line."
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, input, got)
}

func TestCollapseRepetition_CollapsesBlankRuns(t *testing.T) {
	input := "para one\n\n\n\npara two"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, "para one\n\npara two", got)
}

func TestCollapseRepetition_PreservesSingleBlankLine(t *testing.T) {
	input := "para one\n\npara two"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, input, got)
}

func TestCollapseRepetition_RepeatedSentenceSingleParagraph(t *testing.T) {
	// A sentence repeated four times in one paragraph collapses to one
	// occurrence: line dedup cannot see it, sentence dedup can.
	sentence := "The answer is forty-two."
	input := strings.Repeat(sentence+" ", 4)
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, sentence, got)
}

func TestCollapseRepetition_MixedSentences(t *testing.T) {
	input := "It works. It works. Really! It works. Really!"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, "It works. Really!", got)
}

func TestCollapseRepetition_TrailingFragment(t *testing.T) {
	input := "Done. Done. and one more thing"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, "Done. and one more thing", got)
}

func TestCollapseRepetition_DuplicatedHalves(t *testing.T) {
	// No sentence terminators at all, so only the halves check can fire.
	half := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"
	input := half + " " + half
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, half, got)
}

func TestCollapseRepetition_ShortTextSkipsHalvesCheck(t *testing.T) {
	// Under the word-count threshold the proportional check must not run,
	// even for a text that is two identical halves.
	input := "one two three one two three"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, input, got)
}

func TestCollapseRepetition_DistinctHalvesUntouched(t *testing.T) {
	input := "the quick brown fox jumps over the lazy dog near the river " +
		"while seven wizards brew strong potions under a pale winter moon tonight"
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, input, got)
}

func TestCollapseRepetition_DuplicatedThirds(t *testing.T) {
	// First and second thirds identical, distinct tail: keep first third only.
	third := "red orange yellow green blue indigo violet crimson amber teal"
	tail := "and that is every colour I can name for you today friend"
	input := third + " " + third + " " + tail
	got := CollapseRepetition(input, DefaultThresholds())
	require.Equal(t, third, got)
}

func TestCollapseRepetition_EmptyInput(t *testing.T) {
	require.Equal(t, "", CollapseRepetition("", DefaultThresholds()))
}

func TestCollapseRepetition_CustomThresholds(t *testing.T) {
	// Lowering MinWords makes the halves check fire on a short text.
	th := DefaultThresholds()
	th.MinWords = 4
	th.MinSegment = 5

	half := "lorem ipsum dolor sit"
	input := half + " " + half
	got := CollapseRepetition(input, th)
	require.Equal(t, half, got)
}

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()
	require.Equal(t, 20, th.MinWords)
	require.Equal(t, 30, th.MinSegment)
	require.Equal(t, 100, th.HalfPrefix)
	require.Equal(t, 80, th.ThirdPrefix)
}

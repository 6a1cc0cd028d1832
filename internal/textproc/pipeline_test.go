// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
package textproc

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// FULL SANITIZATION PIPELINE TESTS
// =============================================================================

func TestSanitize_RoleLines(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.Sanitize("System: You are a helpful assistant.\nUser: Hi\nAssistant: Hello there!")
	require.Equal(t, "Hi\nHello there!", got)
}

func TestSanitize_ChatMLHeader(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.Sanitize("<|im_start|>assistant\nI can help with that.")
	require.Equal(t, "I can help with that.", got)
}

func TestSanitize_FinalAnswer(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.Sanitize("Reasoning: The user wants X.\nFinal Answer: The answer is X.")
	require.Equal(t, "The answer is X.", got)
}

func TestSanitize_RepeatedSentence(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.Sanitize(strings.Repeat("I am very happy to help you today. ", 4))
	require.Equal(t, "I am very happy to help you today.", got)
}

func TestSanitize_LeakagePhraseBeforeCode(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.Sanitize("The user is asking for python code.\nHere it is:\n```python\nprint('hi')\n```")
	require.Equal(t, "Here it is:\n```python\nprint('hi')\n```", got)
}

func TestSanitize_Idempotent(t *testing.T) {
	cfg := DefaultConfig()

	inputs := []string{
		"Hi\nHello there!",
		"The answer is X.",
		"plain prose with nothing to clean",
		"para one\n\npara two",
		"Here it is:\n```go\nfmt.Println(\"hi\")\n```",
	}

	for _, input := range inputs {
		once := cfg.Sanitize(input)
		twice := cfg.Sanitize(once)
		require.Equal(t, once, twice, "sanitize must be idempotent for %q", input)
	}
}

func TestSanitize_NoScaffoldingSurvives(t *testing.T) {
	cfg := DefaultConfig()

	input := "<|im_start|>assistant\nSystem: setup\nAssistant: The result is **done**.\n<|im_end|>"
	got := cfg.Sanitize(input)

	for _, tok := range DefaultStripTokens {
		require.NotContains(t, got, tok)
	}
	require.NotContains(t, got, "System:")
	require.Contains(t, got, "The result is **done**.")
}

func TestSanitize_EmptyAndDegenerate(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\n  ", ""},
		{"tokens only", "<|im_start|><|im_end|>", ""},
		{"forbidden only", "System: a\nDeveloper: b", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, cfg.Sanitize(tc.input))
		})
	}
}

func TestSanitize_ConcurrentUse(t *testing.T) {
	// One Config shared by many goroutines; the pipeline holds no state
	// between calls, so outputs must be stable.
	cfg := DefaultConfig()
	input := "User: Hi\nAssistant: Hello there!"
	want := "Hi\nHello there!"

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := cfg.Sanitize(input); got != want {
				t.Errorf("Sanitize = %q, want %q", got, want)
			}
		}()
	}
	wg.Wait()
}

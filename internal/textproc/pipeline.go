// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
package textproc

import (
	"regexp"
	"strings"
)

// =============================================================================
// PIPELINE CONFIGURATION
// =============================================================================

// Config holds the sanitization tables: which tokens to strip, which phrases
// poison a line, which role prefixes to peel off, and the repetition tuning
// constants. Build one with NewConfig or DefaultConfig and treat it as
// immutable; a Config may be shared by any number of concurrent sessions.
type Config struct {
	StripTokens      []string
	ForbiddenPhrases []string
	RoleNames        []string
	Thresholds       Thresholds

	rolePattern *regexp.Regexp
}

// NewConfig builds an immutable sanitization config from explicit tables.
// The role-prefix matcher is compiled once here, not per call.
func NewConfig(stripTokens, forbiddenPhrases, roleNames []string, th Thresholds) Config {
	return Config{
		StripTokens:      stripTokens,
		ForbiddenPhrases: forbiddenPhrases,
		RoleNames:        roleNames,
		Thresholds:       th,
		rolePattern:      compileRolePattern(roleNames),
	}
}

// DefaultConfig returns the standard sanitization config.
func DefaultConfig() Config {
	return NewConfig(DefaultStripTokens, DefaultForbiddenPhrases, DefaultRoleNames, DefaultThresholds())
}

// Sanitize runs the full sanitization stage: token stripping, line filtering,
// final-answer extraction, and repetition collapsing, in that order.
//
// Every code path that displays a model response must pass through here
// first. Sanitize never fails: malformed or unexpected input simply flows
// through whichever stages do not match it.
func (c Config) Sanitize(text string) string {
	if text == "" {
		return ""
	}

	out := StripTokens(text, c.StripTokens)
	out = c.FilterLines(out)
	out = ExtractFinalAnswer(out)
	out = CollapseRepetition(out, c.Thresholds)

	return strings.TrimSpace(out)
}

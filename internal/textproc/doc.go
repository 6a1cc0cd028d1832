// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textproc implements the sanitization stage of the output pipeline.
//
// Raw model completions arrive full of serving-template debris: ChatML
// markers, role prefixes, leaked system lines, visible reasoning, and the
// occasional decoding loop that repeats the same sentence four times.
// This package removes all of that before anything reaches the renderer.
//
// # Pipeline Order
//
// The stages run in a fixed order, each a pure function:
//
//  1. StripTokens      - literal scaffolding token removal
//  2. Config.FilterLines - per-line scaffolding/role filtering
//  3. ExtractFinalAnswer - chain-of-thought truncation
//  4. CollapseRepetition - decoding-loop removal
//
// Config.Sanitize runs all four. The sanitization stage only deletes or
// truncates content; it never reorders it. Fenced code blocks pass through
// FilterLines verbatim.
//
// # Usage
//
//	cfg := textproc.DefaultConfig()
//	clean := cfg.Sanitize(rawResponse)
//
// Config is immutable after construction and safe for concurrent use; the
// pipeline holds no state between calls.
package textproc

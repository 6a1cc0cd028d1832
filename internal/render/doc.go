// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render implements the rendering stage of the output pipeline.
//
// Sanitized text still has to survive the terminal: markdown bold becomes
// real ANSI bold, paragraphs wrap to a column budget measured in display
// cells (not bytes, not runes), and boxed messages pad every line to an
// exact inner width so the right border never drifts.
//
// # Pipeline Order
//
//  1. ConvertBold   - **span** to ANSI bold/reset
//  2. Wrap          - visible-width word wrap, escape-aware
//  3. InnerWidth / PadLine - box layout
//
// Layout runs all three. The rendering stage never deletes content; it only
// reflows and pads. Width arithmetic goes through VisibleWidth, which strips
// SGR escapes and defers to go-runewidth for CJK and emoji cells; that is
// the property that keeps boxes aligned when the model answers in emoji.
//
// All functions are pure and safe for concurrent use.
package render

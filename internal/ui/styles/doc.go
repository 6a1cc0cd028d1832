// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the NovaMind TUI.
//
// Themes are named palettes (cosmic, matrix, sunset, ocean, dark, light)
// selectable at runtime with /theme. All colors use Lip Gloss AdaptiveColor
// so they adjust to light and dark terminal backgrounds; terminal color
// capability is detected via termenv.
package styles

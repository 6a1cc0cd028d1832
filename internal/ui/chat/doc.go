// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for NovaMind.
//
// The view holds the conversation transcript in a viewport, a text input
// for prompts and slash commands, and a spinner shown while a completion is
// in flight. Assistant responses run through the sanitization pipeline
// before display and are revealed with a typing animation.
package chat

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is an ordered list of Messages, each carrying a Role,
// content, and timing metadata. Assistant messages are created in a
// streaming state and accumulate tokens until finalized; the sanitized,
// display-ready form of their content is produced elsewhere (internal/textproc
// and internal/render) and is never stored here.
package model

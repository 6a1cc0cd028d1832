// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memory provides persistent conversation memory for NovaMind.
//
// Three tables back the store: sessions (one row per chat session),
// messages (the transcript, linked to a session), and facts (key/value
// pairs the user asks NovaMind to remember across sessions).
//
// Storage is SQLite via the pure-Go modernc.org/sqlite driver, so there is
// no cgo dependency. The connection pool is limited to a single connection
// because SQLite allows one writer at a time.
package memory

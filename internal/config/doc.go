// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for novamind.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. The sanitization tables (strip tokens, forbidden phrases, role
// names) and the repetition thresholds live here so deployments can tune
// them without a rebuild; the pipeline packages consume them as immutable
// values.
//
// File location: ~/.novamind/config.toml, overridable with NOVAMIND_CONFIG.
//
// Environment overrides:
//   - NOVAMIND_API_KEY / NOVAMIND_API_KEYS (comma-separated key ring)
//   - NOVAMIND_THEME
//   - NOVAMIND_MODEL
//
// Watch re-reads the file on change (fsnotify) so theme and layout tweaks
// apply to a running session.
package config

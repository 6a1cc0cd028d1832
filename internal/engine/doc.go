// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine provides the completion client for NovaMind.
//
// The client speaks the OpenRouter chat completions API. It carries a ring
// of API keys and rotates to the next key when the current one is rejected
// or rate limited, retries transient failures with exponential backoff, and
// paces outgoing requests with a client-side rate limiter.
//
// Raw completion text is returned as-is; callers run it through
// internal/textproc before display.
package engine

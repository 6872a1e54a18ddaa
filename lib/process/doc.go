// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for foundry
// binaries. It centralizes the one legitimate raw I/O pattern that
// exists before the structured logger is initialized: fatal error
// reporting to stderr followed by process exit. All other output in
// foundry binaries goes through log/slog.
package process

// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

// Package security provides the identity and provider plumbing used
// around the plugin host: principal string parsing, the closed
// resource-kind and operation name tables with their display-name
// lookups, and an ordered registry of security provider constructors.
//
// Provider installation deliberately goes through a registration
// table rather than reflective construction by class name. The three
// failure modes of the reflective approach survive as explicit error
// kinds: [ErrUnknownProvider], [ErrWrongCapability], and
// [ErrProviderConstruction].
package security

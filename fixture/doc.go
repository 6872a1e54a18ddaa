// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

// Package fixture builds the test-plugin archives used to exercise
// plugin isolation.
//
// Fixtures are small, independently compiled source trees resolved
// through a search path of resource roots. A [Registry] builds its
// whole catalog exactly once per process: for each fixture it locates
// the source tree, removes stale compiled output from a prior run,
// compiles all sources together, and packages everything except the
// sources into a zip archive in a registry-owned work directory.
//
// A broken fixture does not abort the others and does not propagate
// an error out of initialization — failures are captured per fixture
// and the first one is retained as the registry cause. Every consumer
// must call [Registry.AssertInitialized] (or
// [Registry.RequireInitialized] from a test) before relying on any
// fixture; forgetting the guard turns a build failure into a silent
// absence of archives.
//
// To add a fixture, create its source tree under a resource root and
// add an entry to the catalog. The archive paths from
// [Registry.ArchivePaths] are suitable for concatenation into a
// plugin search path.
package fixture

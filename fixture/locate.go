// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrResourceNotFound indicates no search path root contains the
	// requested fixture directory.
	ErrResourceNotFound = errors.New("fixture resource not found")

	// ErrNotADirectory indicates the resolved resource path exists
	// but is not a directory.
	ErrNotADirectory = errors.New("fixture resource is not a directory")

	// ErrNotReadable indicates the process lacks permission to read
	// the resolved resource directory.
	ErrNotReadable = errors.New("fixture resource is not readable")
)

// Locator resolves fixture resource subdirectories against an ordered
// search path of roots. Resolution has no side effects.
type Locator struct {
	// SearchPath is the ordered list of resource roots. The first
	// root containing the requested directory wins.
	SearchPath []string
}

// Resolve returns the absolute path of dir under the first search
// path root that contains it. A root entry where the path exists but
// is not a usable directory stops the search with ErrNotADirectory or
// ErrNotReadable rather than falling through to later roots, so a
// shadowed broken entry is reported instead of silently skipped.
func (l Locator) Resolve(dir string) (string, error) {
	if len(l.SearchPath) == 0 {
		return "", fmt.Errorf("%w: %q (empty search path)", ErrResourceNotFound, dir)
	}

	for _, root := range l.SearchPath {
		candidate := filepath.Join(root, dir)
		info, err := os.Stat(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			if os.IsPermission(err) {
				return "", fmt.Errorf("%w: %s", ErrNotReadable, candidate)
			}
			return "", fmt.Errorf("probing %s: %w", candidate, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrNotADirectory, candidate)
		}

		// Readability check: opening the directory is the only
		// reliable probe (mode bits lie under ACLs and for root).
		handle, err := os.Open(candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotReadable, candidate)
		}
		handle.Close()

		absolute, err := filepath.Abs(candidate)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", candidate, err)
		}
		return absolute, nil
	}

	return "", fmt.Errorf("%w: %q (search path %s)",
		ErrResourceNotFound, dir, strings.Join(l.SearchPath, string(os.PathListSeparator)))
}

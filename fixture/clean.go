// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrCleanupFailed indicates a stale compiled file could not be
// removed before recompilation.
var ErrCleanupFailed = errors.New("stale artifact cleanup failed")

// CleanCompiledOutput recursively removes every file with the given
// compiled-output suffix from dir, so a subsequent compile cannot
// pick up artifacts left by a prior run. The removal mutates the
// source tree in place; callers must not run it concurrently with a
// build of the same fixture.
//
// Any failed deletion aborts with ErrCleanupFailed naming the path
// that could not be removed.
func CleanCompiledOutput(dir, outputSuffix string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var stale []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), outputSuffix) {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: scanning %s: %v", ErrCleanupFailed, dir, err)
	}

	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("%w: removing %s: %v", ErrCleanupFailed, path, err)
		}
	}

	if len(stale) > 0 {
		logger.Debug("removed stale compiled output", "dir", dir, "files", len(stale))
	}
	return nil
}

// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanRemovesOnlyCompiledOutput(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"sampling.go":          "package main\n",
		"sampling.so":          "stale object",
		"nested/helper.go":     "package main\n",
		"nested/helper.so":     "stale object",
		"nested/resource.txt":  "keep me",
		"services/declaration": "keep me",
	}
	for relative, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(relative))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := CleanCompiledOutput(dir, ".so", nil); err != nil {
		t.Fatalf("CleanCompiledOutput failed: %v", err)
	}

	for _, gone := range []string{"sampling.so", "nested/helper.so"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(gone))); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", gone)
		}
	}
	for _, kept := range []string{"sampling.go", "nested/helper.go", "nested/resource.txt", "services/declaration"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(kept))); err != nil {
			t.Errorf("%s should have been kept: %v", kept, err)
		}
	}
}

func TestCleanMissingDirectory(t *testing.T) {
	err := CleanCompiledOutput(filepath.Join(t.TempDir(), "nope"), ".so", nil)
	if !errors.Is(err, ErrCleanupFailed) {
		t.Fatalf("expected ErrCleanupFailed, got %v", err)
	}
}

func TestCleanEmptyTreeIsNoop(t *testing.T) {
	if err := CleanCompiledOutput(t.TempDir(), ".so", nil); err != nil {
		t.Fatalf("clean of empty tree failed: %v", err)
	}
}

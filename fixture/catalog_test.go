// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	return path
}

func TestLoadCatalogYAML(t *testing.T) {
	path := writeCatalog(t, "catalog.yaml", `
fixtures:
  - name: sampling
    dir: sampling
  - name: service-loader
    dir: service-loader
`)
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	want := []Fixture{
		{Name: "sampling", Dir: "sampling"},
		{Name: "service-loader", Dir: "service-loader"},
	}
	if len(catalog) != len(want) {
		t.Fatalf("got %d fixtures, want %d", len(catalog), len(want))
	}
	for i := range want {
		if catalog[i] != want[i] {
			t.Errorf("fixture %d: got %+v, want %+v", i, catalog[i], want[i])
		}
	}
}

func TestLoadCatalogJSONC(t *testing.T) {
	path := writeCatalog(t, "catalog.jsonc", `{
  // fixtures built at process start
  "fixtures": [
    {"name": "sampling", "dir": "sampling"},
    {"name": "always-fail", "dir": "always-fail"}, // trailing comma below too
  ],
}`)
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(catalog) != 2 || catalog[1].Name != "always-fail" {
		t.Errorf("unexpected catalog: %+v", catalog)
	}
}

func TestLoadCatalogRejectsDuplicates(t *testing.T) {
	path := writeCatalog(t, "catalog.yaml", `
fixtures:
  - name: sampling
    dir: a
  - name: sampling
    dir: b
`)
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestLoadCatalogRejectsBlankFields(t *testing.T) {
	path := writeCatalog(t, "catalog.yaml", `
fixtures:
  - name: sampling
`)
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected missing dir error")
	}
}

func TestLoadCatalogUnsupportedExtension(t *testing.T) {
	path := writeCatalog(t, "catalog.toml", "fixtures = []\n")
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func TestDefaultCatalogIsFreshPerCall(t *testing.T) {
	first := DefaultCatalog()
	first[0].Name = "mutated"
	second := DefaultCatalog()
	if second[0].Name != Sampling {
		t.Error("DefaultCatalog must not share state across calls")
	}
	if err := validateCatalog(second); err != nil {
		t.Errorf("default catalog invalid: %v", err)
	}
}

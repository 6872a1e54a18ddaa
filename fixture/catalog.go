// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Fixture is one named catalog entry: a logical fixture name and the
// resource subdirectory holding its sources. Immutable after
// construction.
type Fixture struct {
	// Name is the stable identifier tests reference.
	Name string `yaml:"name" json:"name"`

	// Dir is the source subdirectory, resolved against the registry
	// search path.
	Dir string `yaml:"dir" json:"dir"`
}

// Names of the built-in fixtures.
const (
	// Sampling is a fixture that records information about its own
	// initialization.
	Sampling = "sampling"

	// ServiceLoader is a fixture that registers a service
	// implementation through a registration descriptor packaged
	// alongside its compiled output.
	ServiceLoader = "service-loader"

	// AlwaysFail is a fixture whose sources intentionally do not
	// compile. It exists to verify that one broken fixture never
	// takes down its siblings.
	AlwaysFail = "always-fail"
)

// DefaultCatalog returns the fixed built-in fixture set. The catalog
// is constructed fresh on each call so callers cannot mutate the
// defaults.
func DefaultCatalog() []Fixture {
	return []Fixture{
		{Name: Sampling, Dir: "sampling"},
		{Name: ServiceLoader, Dir: "service-loader"},
		{Name: AlwaysFail, Dir: "always-fail"},
	}
}

type catalogFile struct {
	Fixtures []Fixture `yaml:"fixtures" json:"fixtures"`
}

// LoadCatalog reads a fixture catalog from a YAML (.yaml, .yml) or
// JSONC (.json, .jsonc) file. JSONC input may contain // comments,
// /* block comments */, and trailing commas.
func LoadCatalog(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var parsed catalogFile
	switch extension := filepath.Ext(path); extension {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &parsed); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported catalog extension %q (want .yaml, .yml, .json, or .jsonc)", path, extension)
	}

	if err := validateCatalog(parsed.Fixtures); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed.Fixtures, nil
}

// validateCatalog rejects empty catalogs, blank fields, and duplicate
// names.
func validateCatalog(catalog []Fixture) error {
	if len(catalog) == 0 {
		return fmt.Errorf("catalog has no fixtures")
	}
	seen := make(map[string]bool, len(catalog))
	for i, fx := range catalog {
		if fx.Name == "" {
			return fmt.Errorf("fixture %d has no name", i)
		}
		if fx.Dir == "" {
			return fmt.Errorf("fixture %q has no dir", fx.Name)
		}
		if seen[fx.Name] {
			return fmt.Errorf("duplicate fixture name %q", fx.Name)
		}
		seen[fx.Name] = true
	}
	return nil
}

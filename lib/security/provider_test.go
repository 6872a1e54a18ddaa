// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"errors"
	"fmt"
	"testing"
)

type fakeProvider struct{ name string }

func (p *fakeProvider) Name() string { return p.name }

// fakeCreator implements Creator and records the options it saw.
type fakeCreator struct {
	name      string
	options   map[string]string
	configErr error
}

func (c *fakeCreator) Configure(options map[string]string) error {
	c.options = options
	return c.configErr
}

func (c *fakeCreator) Provider() (Provider, error) {
	return &fakeProvider{name: c.name}, nil
}

func TestInstallOrderAndOptions(t *testing.T) {
	set := NewProviderSet(nil)
	first := &fakeCreator{name: "first"}
	second := &fakeCreator{name: "second"}
	set.Register("first", func() (any, error) { return first, nil })
	set.Register("second", func() (any, error) { return second, nil })

	options := map[string]string{"mode": "test"}
	if err := set.Install(" first , second ", options); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	installed := set.Installed()
	if len(installed) != 2 || installed[0].Name() != "first" || installed[1].Name() != "second" {
		t.Errorf("installation order wrong: %+v", installed)
	}
	if first.options["mode"] != "test" || second.options["mode"] != "test" {
		t.Error("options were not passed to Configure")
	}
}

func TestInstallEmptySpec(t *testing.T) {
	set := NewProviderSet(nil)
	if err := set.Install("", nil); err != nil {
		t.Fatalf("empty spec must install nothing: %v", err)
	}
	if len(set.Installed()) != 0 {
		t.Errorf("expected no providers, got %d", len(set.Installed()))
	}
}

func TestInstallUnknownProvider(t *testing.T) {
	set := NewProviderSet(nil)
	err := set.Install("nobody", nil)
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestInstallWrongCapability(t *testing.T) {
	set := NewProviderSet(nil)
	set.Register("plain", func() (any, error) { return "not a creator", nil })
	err := set.Install("plain", nil)
	if !errors.Is(err, ErrWrongCapability) {
		t.Fatalf("expected ErrWrongCapability, got %v", err)
	}
}

func TestInstallConstructionFailure(t *testing.T) {
	set := NewProviderSet(nil)
	set.Register("boom", func() (any, error) { return nil, fmt.Errorf("out of entropy") })
	err := set.Install("boom", nil)
	if !errors.Is(err, ErrProviderConstruction) {
		t.Fatalf("expected ErrProviderConstruction, got %v", err)
	}
}

func TestInstallConfigureFailureStopsList(t *testing.T) {
	set := NewProviderSet(nil)
	good := &fakeCreator{name: "good"}
	bad := &fakeCreator{name: "bad", configErr: fmt.Errorf("bad option")}
	set.Register("good", func() (any, error) { return good, nil })
	set.Register("bad", func() (any, error) { return bad, nil })

	err := set.Install("good,bad", nil)
	if !errors.Is(err, ErrProviderConstruction) {
		t.Fatalf("expected ErrProviderConstruction, got %v", err)
	}
	// Providers installed before the failure stay installed.
	installed := set.Installed()
	if len(installed) != 1 || installed[0].Name() != "good" {
		t.Errorf("expected only the first provider installed, got %+v", installed)
	}
}

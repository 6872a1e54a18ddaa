// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Provider is an installed security provider.
type Provider interface {
	// Name identifies the provider.
	Name() string
}

// Creator constructs and configures a security provider. Registered
// constructors must produce a value with this capability.
type Creator interface {
	// Configure applies provider options before the provider is
	// requested.
	Configure(options map[string]string) error

	// Provider returns the configured provider.
	Provider() (Provider, error)
}

var (
	// ErrUnknownProvider indicates a requested provider name has no
	// registered constructor.
	ErrUnknownProvider = errors.New("unknown security provider")

	// ErrWrongCapability indicates a registered constructor produced
	// a value that does not implement Creator.
	ErrWrongCapability = errors.New("security provider has wrong capability")

	// ErrProviderConstruction indicates a constructor, Configure, or
	// Provider call failed.
	ErrProviderConstruction = errors.New("security provider construction failed")
)

// ProviderSet is a named registry of provider constructors and the
// ordered list of providers installed from it. The zero value is not
// usable; create one with NewProviderSet.
type ProviderSet struct {
	mu           sync.Mutex
	constructors map[string]func() (any, error)
	installed    []Provider
	logger       *slog.Logger
}

// NewProviderSet creates an empty provider set. A nil logger defaults
// to slog.Default().
func NewProviderSet(logger *slog.Logger) *ProviderSet {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderSet{
		constructors: make(map[string]func() (any, error)),
		logger:       logger,
	}
}

// Register associates a provider name with a constructor. The
// constructor returns any so that capability checking happens at
// install time with an attributable error. Re-registering a name
// replaces the previous constructor.
func (s *ProviderSet) Register(name string, constructor func() (any, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.constructors[name] = constructor
}

// Install constructs, configures, and installs the named providers in
// order. The list is comma-separated; whitespace around names is
// ignored and an empty list installs nothing. The first failure
// aborts installation, leaving providers installed by earlier list
// entries in place.
func (s *ProviderSet) Install(list string, options map[string]string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		constructor, ok := s.constructors[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownProvider, name)
		}

		constructed, err := constructor()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrProviderConstruction, name, err)
		}

		creator, ok := constructed.(Creator)
		if !ok {
			return fmt.Errorf("%w: %s is %T, expected a Creator", ErrWrongCapability, name, constructed)
		}

		if err := creator.Configure(options); err != nil {
			return fmt.Errorf("%w: configuring %s: %v", ErrProviderConstruction, name, err)
		}
		provider, err := creator.Provider()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrProviderConstruction, name, err)
		}

		s.installed = append(s.installed, provider)
		s.logger.Debug("installed security provider", "name", name, "position", len(s.installed))
	}
	return nil
}

// Installed returns the providers installed so far, in installation
// order.
func (s *ProviderSet) Installed() []Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Provider(nil), s.installed...)
}

// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"fmt"
	"strings"
)

// Principal identifies an authenticated party as a type:name pair.
// The name half may itself contain the separator; only the first
// colon splits the two.
type Principal struct {
	Type string
	Name string
}

// ParsePrincipal parses a "principalType:principalName" string.
// Returns an error for empty input or input without a separator.
func ParsePrincipal(raw string) (Principal, error) {
	if raw == "" {
		return Principal{}, fmt.Errorf("expected a string in format principalType:principalName but got an empty string")
	}
	principalType, principalName, ok := strings.Cut(raw, ":")
	if !ok {
		return Principal{}, fmt.Errorf("expected a string in format principalType:principalName but got %q", raw)
	}
	return Principal{Type: principalType, Name: principalName}, nil
}

// String renders the principal back to its type:name form.
func (p Principal) String() string {
	return p.Type + ":" + p.Name
}

// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package security

import "testing"

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"UNKNOWN", "Unknown"},
		{"ANY", "Any"},
		{"DESCRIBE_CONFIGS", "DescribeConfigs"},
		{"service_loader", "ServiceLoader"},
		{"A", "A"},
		{"", ""},
		{"_LEADING", "Leading"},
	}
	for _, test := range tests {
		if got := ToPascalCase(test.input); got != test.want {
			t.Errorf("ToPascalCase(%q): got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestKindLookupsRoundTrip(t *testing.T) {
	for kind := ResourceUnknown; kind <= ResourceHost; kind++ {
		if got := ResourceKindByName(kind.DisplayName()); got != kind {
			t.Errorf("ResourceKindByName(%q): got %v, want %v", kind.DisplayName(), got, kind)
		}
	}
	for operation := OperationUnknown; operation <= OperationConfigure; operation++ {
		if got := OperationByName(operation.DisplayName()); got != operation {
			t.Errorf("OperationByName(%q): got %v, want %v", operation.DisplayName(), got, operation)
		}
	}
}

func TestKindLookupUnknownFallback(t *testing.T) {
	if got := ResourceKindByName("NoSuchKind"); got != ResourceUnknown {
		t.Errorf("unknown resource name: got %v", got)
	}
	if got := OperationByName("NoSuchOperation"); got != OperationUnknown {
		t.Errorf("unknown operation name: got %v", got)
	}
	// Canonical (non-display) names do not match the display table.
	if got := OperationByName("DESCRIBE"); got != OperationUnknown {
		t.Errorf("canonical name must not resolve: got %v", got)
	}
}

func TestKindNames(t *testing.T) {
	if ResourceArchive.String() != "ARCHIVE" {
		t.Errorf("ResourceArchive: got %q", ResourceArchive.String())
	}
	if OperationConfigure.DisplayName() != "Configure" {
		t.Errorf("OperationConfigure display: got %q", OperationConfigure.DisplayName())
	}
}

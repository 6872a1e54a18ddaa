// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package security

import "testing"

func TestParsePrincipal(t *testing.T) {
	tests := []struct {
		input   string
		want    Principal
		wantErr bool
	}{
		{input: "User:alice", want: Principal{Type: "User", Name: "alice"}},
		{input: "User:CN=alice,OU=tests", want: Principal{Type: "User", Name: "CN=alice,OU=tests"}},
		{input: "Group:ops:admins", want: Principal{Type: "Group", Name: "ops:admins"}},
		{input: ":anonymous", want: Principal{Type: "", Name: "anonymous"}},
		{input: "User:", want: Principal{Type: "User", Name: ""}},
		{input: "", wantErr: true},
		{input: "alice", wantErr: true},
	}

	for _, test := range tests {
		got, err := ParsePrincipal(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParsePrincipal(%q): expected error, got %+v", test.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePrincipal(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParsePrincipal(%q): got %+v, want %+v", test.input, got, test.want)
		}
	}
}

func TestPrincipalString(t *testing.T) {
	p := Principal{Type: "User", Name: "alice"}
	if p.String() != "User:alice" {
		t.Errorf("String: got %q", p.String())
	}

	parsed, err := ParsePrincipal(p.String())
	if err != nil {
		t.Fatalf("round trip parse: %v", err)
	}
	if parsed != p {
		t.Errorf("round trip: got %+v, want %+v", parsed, p)
	}
}

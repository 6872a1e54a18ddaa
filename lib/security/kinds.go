// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package security

// ResourceKind is the closed set of resource categories that access
// rules can name. The zero value is ResourceUnknown, which is also
// the result of any failed display-name lookup.
type ResourceKind int8

const (
	ResourceUnknown ResourceKind = iota
	ResourceAny
	ResourcePlugin
	ResourceArchive
	ResourceRegistry
	ResourceHost
)

// Operation is the closed set of actions that access rules can name.
type Operation int8

const (
	OperationUnknown Operation = iota
	OperationAny
	OperationAll
	OperationLoad
	OperationRead
	OperationWrite
	OperationCreate
	OperationDelete
	OperationDescribe
	OperationConfigure
)

// Canonical SCREAMING_SNAKE names, indexed by kind value. Display
// names are the PascalCase form of these.
var resourceKindNames = [...]string{
	ResourceUnknown:  "UNKNOWN",
	ResourceAny:      "ANY",
	ResourcePlugin:   "PLUGIN",
	ResourceArchive:  "ARCHIVE",
	ResourceRegistry: "REGISTRY",
	ResourceHost:     "HOST",
}

var operationNames = [...]string{
	OperationUnknown:   "UNKNOWN",
	OperationAny:       "ANY",
	OperationAll:       "ALL",
	OperationLoad:      "LOAD",
	OperationRead:      "READ",
	OperationWrite:     "WRITE",
	OperationCreate:    "CREATE",
	OperationDelete:    "DELETE",
	OperationDescribe:  "DESCRIBE",
	OperationConfigure: "CONFIGURE",
}

// Display-name lookup tables, built once at init from the canonical
// name lists. Mapping construction is pure, so the tables never
// change after startup.
var (
	resourceKindsByDisplayName = make(map[string]ResourceKind, len(resourceKindNames))
	operationsByDisplayName    = make(map[string]Operation, len(operationNames))
)

func init() {
	for kind, name := range resourceKindNames {
		resourceKindsByDisplayName[ToPascalCase(name)] = ResourceKind(kind)
	}
	for operation, name := range operationNames {
		operationsByDisplayName[ToPascalCase(name)] = Operation(operation)
	}
}

// String returns the canonical SCREAMING_SNAKE name of the kind.
func (k ResourceKind) String() string {
	if int(k) < 0 || int(k) >= len(resourceKindNames) {
		return "UNKNOWN"
	}
	return resourceKindNames[k]
}

// DisplayName returns the PascalCase form of the kind name.
func (k ResourceKind) DisplayName() string {
	return ToPascalCase(k.String())
}

// String returns the canonical SCREAMING_SNAKE name of the operation.
func (o Operation) String() string {
	if int(o) < 0 || int(o) >= len(operationNames) {
		return "UNKNOWN"
	}
	return operationNames[o]
}

// DisplayName returns the PascalCase form of the operation name.
func (o Operation) DisplayName() string {
	return ToPascalCase(o.String())
}

// ResourceKindByName looks up a resource kind by its PascalCase
// display name. Unrecognized names map to ResourceUnknown.
func ResourceKindByName(name string) ResourceKind {
	return resourceKindsByDisplayName[name]
}

// OperationByName looks up an operation by its PascalCase display
// name. Unrecognized names map to OperationUnknown.
func OperationByName(name string) Operation {
	return operationsByDisplayName[name]
}

// ToPascalCase converts a SCREAMING_SNAKE or snake_case name to
// PascalCase: underscores are dropped and the following character is
// upper-cased.
//
//	ToPascalCase("DESCRIBE_CONFIGS") → "DescribeConfigs"
func ToPascalCase(name string) string {
	var builder []byte
	capitalizeNext := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
			capitalizeNext = true
		case capitalizeNext:
			builder = append(builder, upper(c))
			capitalizeNext = false
		default:
			builder = append(builder, lower(c))
		}
	}
	return string(builder)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

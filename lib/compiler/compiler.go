// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

// Package compiler invokes an external compiler over a fixture source
// tree. All source files under the tree are compiled together in a
// single invocation, so cross-references within a fixture resolve,
// and the tool inherits the host environment, so fixture symbols also
// resolve against the enclosing build context. Diagnostics are
// captured in memory and returned with the error on a failed compile.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrCompilationFailed indicates the compiler reported an error. The
// wrapping error carries the full diagnostic output.
var ErrCompilationFailed = errors.New("compilation failed")

// Config holds configuration for creating an Invoker.
type Config struct {
	// Tool is the compiler binary. Defaults to "go".
	Tool string

	// Args are the arguments placed before the output flag and the
	// source file list. When Tool is unset this defaults to
	// ["build", "-buildmode=plugin"], which produces a loadable
	// plugin object from the fixture sources. A custom Tool receives
	// exactly the args given here.
	Args []string

	// SourceSuffix identifies source files. Defaults to ".go".
	SourceSuffix string

	// OutputSuffix is the extension of the compiled object written
	// into the source tree. Defaults to ".so".
	OutputSuffix string

	// Env are additional environment variables (KEY=value) appended
	// to the host environment for the compiler process.
	Env []string

	// Logger for compile operations. Defaults to slog.Default().
	Logger *slog.Logger
}

// Invoker runs the configured compiler against fixture source trees.
type Invoker struct {
	tool         string
	args         []string
	sourceSuffix string
	outputSuffix string
	env          []string
	logger       *slog.Logger
}

// New creates an Invoker, filling in defaults for unset fields.
func New(config Config) *Invoker {
	tool := config.Tool
	if tool == "" {
		tool = "go"
	}
	args := config.Args
	if args == nil && config.Tool == "" {
		args = []string{"build", "-buildmode=plugin"}
	}
	sourceSuffix := config.SourceSuffix
	if sourceSuffix == "" {
		sourceSuffix = ".go"
	}
	outputSuffix := config.OutputSuffix
	if outputSuffix == "" {
		outputSuffix = ".so"
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		tool:         tool,
		args:         args,
		sourceSuffix: sourceSuffix,
		outputSuffix: outputSuffix,
		env:          config.Env,
		logger:       logger,
	}
}

// SourceSuffix returns the suffix identifying source files.
func (inv *Invoker) SourceSuffix() string { return inv.sourceSuffix }

// OutputSuffix returns the suffix of compiled objects, for callers
// that need to find or remove them.
func (inv *Invoker) OutputSuffix() string { return inv.outputSuffix }

// Compile enumerates every source file under sourceDir recursively
// and invokes the compiler once over the whole set, writing the
// compiled object into sourceDir. All compiler output (stdout and
// stderr interleaved) is captured in memory.
//
// A nonzero exit returns ErrCompilationFailed wrapping the captured
// diagnostics. A clean exit succeeds even when the tool printed
// warnings; the warnings are logged at debug level.
func (inv *Invoker) Compile(ctx context.Context, sourceDir string) error {
	sources, err := inv.findSources(sourceDir)
	if err != nil {
		return fmt.Errorf("%w: enumerating sources in %s: %v", ErrCompilationFailed, sourceDir, err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("%w: no %s files under %s", ErrCompilationFailed, inv.sourceSuffix, sourceDir)
	}

	output := filepath.Base(sourceDir) + inv.outputSuffix
	argv := append([]string{}, inv.args...)
	argv = append(argv, "-o", output)
	argv = append(argv, sources...)

	command := exec.CommandContext(ctx, inv.tool, argv...)
	command.Dir = sourceDir
	command.Env = append(os.Environ(), inv.env...)

	var diagnostics bytes.Buffer
	command.Stdout = &diagnostics
	command.Stderr = &diagnostics

	inv.logger.Debug("compiling fixture sources",
		"tool", inv.tool,
		"dir", sourceDir,
		"sources", len(sources))

	if err := command.Run(); err != nil {
		return fmt.Errorf("%w: %s %s: %v\n%s",
			ErrCompilationFailed, inv.tool, strings.Join(argv, " "), err,
			diagnostics.String())
	}

	if diagnostics.Len() > 0 {
		inv.logger.Debug("compiler warnings", "dir", sourceDir, "output", diagnostics.String())
	}
	return nil
}

// findSources returns the source files under dir, relative to dir, in
// lexical walk order. Relative paths keep compiler diagnostics short
// and stable.
func (inv *Invoker) findSources(dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), inv.sourceSuffix) {
			return nil
		}
		relative, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		sources = append(sources, relative)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

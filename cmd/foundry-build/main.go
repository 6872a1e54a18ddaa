// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

// foundry-build compiles a catalog of plugin test fixtures into
// archives and prints the resulting archive paths, one per line (or a
// JSON summary with --json). It exists so build scripts can produce
// fixture archives outside a test process; test suites normally use
// the fixture package directly.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/pluginfoundry/foundry/fixture"
	"github.com/pluginfoundry/foundry/lib/compiler"
	"github.com/pluginfoundry/foundry/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var catalogPath string
	var searchPath []string
	var workDir string
	var tool string
	var logLevel string
	var jsonOutput bool

	flagSet := pflag.NewFlagSet("foundry-build", pflag.ContinueOnError)
	flagSet.StringVar(&catalogPath, "catalog", "", "catalog file (.yaml, .yml, .json, .jsonc); default: built-in catalog")
	flagSet.StringArrayVar(&searchPath, "search-path", nil, "resource root to resolve fixture dirs against (repeatable, ordered)")
	flagSet.StringVar(&workDir, "work-dir", "", "directory to write archives into (default: temporary directory)")
	flagSet.StringVar(&tool, "tool", "", "compiler binary (default: host go toolchain in plugin mode)")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolVar(&jsonOutput, "json", false, "print a JSON summary instead of archive paths")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		flagSet.PrintDefaults()
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if len(searchPath) == 0 {
		return fmt.Errorf("at least one --search-path is required")
	}

	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	catalog := fixture.DefaultCatalog()
	if catalogPath != "" {
		catalog, err = fixture.LoadCatalog(catalogPath)
		if err != nil {
			return err
		}
	}

	invoker := compiler.New(compiler.Config{Tool: tool, Logger: logger})

	registry, err := fixture.New(fixture.Config{
		Catalog:    catalog,
		SearchPath: searchPath,
		WorkDir:    workDir,
		Compiler:   invoker,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	initErr := registry.Init(context.Background())

	if jsonOutput {
		if err := printJSON(registry); err != nil {
			return err
		}
	} else {
		for _, path := range registry.ArchivePaths() {
			fmt.Println(path)
		}
	}

	if initErr != nil {
		return fmt.Errorf("fixture build incomplete: %w", initErr)
	}
	return nil
}

// summary is the --json output shape.
type summary struct {
	Fixtures []fixtureSummary `json:"fixtures"`
}

type fixtureSummary struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Archive string `json:"archive,omitempty"`
	Error   string `json:"error,omitempty"`
}

func printJSON(registry *fixture.Registry) error {
	var result summary
	for _, status := range registry.Statuses() {
		entry := fixtureSummary{
			Name:    status.Fixture.Name,
			State:   status.State.String(),
			Archive: status.ArchivePath,
		}
		if status.Err != nil {
			entry.Error = status.Err.Error()
		}
		result.Fixtures = append(result.Fixtures, entry)
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func parseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pluginfoundry/foundry/lib/archive"
	"github.com/pluginfoundry/foundry/lib/compiler"
)

// State is the lifecycle state of one fixture.
type State int

const (
	// Pending means the fixture has not been built yet.
	Pending State = iota
	// Built means the fixture compiled and its archive was written.
	Built
	// Failed means a build step failed; the error is captured on the
	// fixture's Status.
	Failed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Built:
		return "built"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Build step names used for failure attribution.
const (
	StepLocate  = "locate"
	StepClean   = "clean"
	StepCompile = "compile"
	StepPackage = "package"
)

// BuildError attributes a build failure to a fixture and step. The
// underlying error carries one of the step-specific kinds
// (ErrResourceNotFound, ErrCleanupFailed, compiler.ErrCompilationFailed,
// archive.ErrWriteFailed, ...) and is reachable through errors.Is.
type BuildError struct {
	Fixture string
	Step    string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("fixture %s: %s: %v", e.Fixture, e.Step, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Status is the per-fixture outcome of initialization.
type Status struct {
	Fixture     Fixture
	State       State
	ArchivePath string
	Err         error
}

// TB is the subset of testing.TB used by RequireInitialized, so test
// helpers can abort the calling test without this package importing
// the testing package.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Config holds configuration for creating a Registry.
type Config struct {
	// Catalog is the fixed fixture set to build. Defaults to
	// DefaultCatalog().
	Catalog []Fixture

	// SearchPath is the ordered list of resource roots fixture dirs
	// are resolved against. Required.
	SearchPath []string

	// WorkDir is where archives are written. When empty, a temporary
	// directory is created on first initialization and removed by
	// Cleanup. The registry owns the directory either way; nothing
	// else may delete or rewrite archives in it.
	WorkDir string

	// Compiler invokes the fixture compiler. Defaults to
	// compiler.New(compiler.Config{}) — the host Go toolchain in
	// plugin mode.
	Compiler *compiler.Invoker

	// Logger for build operations. Defaults to slog.Default().
	Logger *slog.Logger
}

// Registry builds a fixed catalog of fixtures exactly once per
// process and exposes the resulting archive locations. All accessors
// trigger the one-shot initialization lazily; the published outcome
// is immutable, so any number of concurrent readers observe the same
// result without locking.
type Registry struct {
	catalog []Fixture
	locator Locator
	invoker *compiler.Invoker
	workDir string
	ownWork bool
	logger  *slog.Logger

	initOnce sync.Once
	outcome  *outcome
}

// outcome is the write-once initialization result.
type outcome struct {
	statuses []Status          // catalog order
	archives map[string]string // fixture name → archive path, Built only
	firstErr error             // first failure by build order
	built    int
}

// New validates the configuration and creates a Registry. No fixture
// is built until the first accessor or an explicit Init call.
func New(config Config) (*Registry, error) {
	catalog := config.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}
	if len(config.SearchPath) == 0 {
		return nil, fmt.Errorf("search path is required")
	}

	invoker := config.Compiler
	if invoker == nil {
		invoker = compiler.New(compiler.Config{})
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		catalog: catalog,
		locator: Locator{SearchPath: config.SearchPath},
		invoker: invoker,
		workDir: config.WorkDir,
		logger:  logger,
	}, nil
}

// Init builds the catalog now instead of on first access. Calling it
// again, or calling any accessor afterwards, never re-runs the build.
// The returned error is the same registry-level cause that
// AssertInitialized reports for failed builds (nil when every fixture
// built).
func (r *Registry) Init(ctx context.Context) error {
	return r.ensure(ctx).firstErr
}

// ensure runs initialization exactly once and returns the published
// outcome.
func (r *Registry) ensure(ctx context.Context) *outcome {
	r.initOnce.Do(func() {
		r.outcome = r.initialize(ctx)
	})
	return r.outcome
}

// initialize builds every catalog fixture sequentially. Sequential
// builds keep diagnostic attribution simple: a compiler failure in
// one fixture is never interleaved with output from another.
func (r *Registry) initialize(ctx context.Context) *outcome {
	result := &outcome{
		statuses: make([]Status, len(r.catalog)),
		archives: make(map[string]string, len(r.catalog)),
	}
	for i, fx := range r.catalog {
		result.statuses[i] = Status{Fixture: fx, State: Pending}
	}

	if r.workDir == "" {
		workDir, err := os.MkdirTemp("", "foundry-archives-")
		if err != nil {
			err = fmt.Errorf("creating archive work directory: %w", err)
			r.logger.Error("fixture initialization failed", "error", err)
			result.firstErr = err
			for i := range result.statuses {
				result.statuses[i].State = Failed
				result.statuses[i].Err = err
			}
			return result
		}
		r.workDir = workDir
		r.ownWork = true
	}

	for i, fx := range r.catalog {
		archivePath, err := r.buildFixture(ctx, fx)
		if err != nil {
			result.statuses[i].State = Failed
			result.statuses[i].Err = err
			if result.firstErr == nil {
				result.firstErr = err
			}
			r.logger.Error("fixture build failed",
				"fixture", fx.Name, "error", err)
			continue
		}
		result.statuses[i].State = Built
		result.statuses[i].ArchivePath = archivePath
		result.archives[fx.Name] = archivePath
		result.built++
		r.logger.Info("fixture built",
			"fixture", fx.Name, "archive", archivePath)
	}
	return result
}

// buildFixture runs the locate → clean → compile → package pipeline
// for one fixture and returns the archive path.
func (r *Registry) buildFixture(ctx context.Context, fx Fixture) (string, error) {
	sourceDir, err := r.locator.Resolve(fx.Dir)
	if err != nil {
		return "", &BuildError{Fixture: fx.Name, Step: StepLocate, Err: err}
	}

	if err := CleanCompiledOutput(sourceDir, r.invoker.OutputSuffix(), r.logger); err != nil {
		return "", &BuildError{Fixture: fx.Name, Step: StepClean, Err: err}
	}

	if err := r.invoker.Compile(ctx, sourceDir); err != nil {
		return "", &BuildError{Fixture: fx.Name, Step: StepCompile, Err: err}
	}

	destination := filepath.Join(r.workDir, fx.Name+".zip")
	_, err = archive.Pack(archive.PackConfig{
		SourceDir:       sourceDir,
		Destination:     destination,
		ExcludeSuffixes: []string{r.invoker.SourceSuffix()},
		Logger:          r.logger,
	})
	if err != nil {
		return "", &BuildError{Fixture: fx.Name, Step: StepPackage, Err: err}
	}
	return destination, nil
}

// AssertInitialized verifies that the fixture catalog built
// completely. It returns the first captured build failure, or an
// error when no fixture was built at all. Every consumer must call
// this (or RequireInitialized) before relying on any fixture;
// otherwise a build failure is observed only as silently missing
// archives.
func (r *Registry) AssertInitialized() error {
	result := r.ensure(context.Background())
	if result.firstErr != nil {
		return fmt.Errorf("fixture registry did not initialize completely: %w", result.firstErr)
	}
	if result.built == 0 {
		return errors.New("no fixtures were built")
	}
	return nil
}

// RequireInitialized aborts the calling test when initialization was
// incomplete. It is the test-side form of AssertInitialized.
func (r *Registry) RequireInitialized(tb TB) {
	tb.Helper()
	if err := r.AssertInitialized(); err != nil {
		tb.Fatalf("%v", err)
	}
}

// ArchivePaths returns the absolute archive paths of all Built
// fixtures in catalog order. The result is stable across calls and
// suitable for concatenation into a plugin search path.
func (r *Registry) ArchivePaths() []string {
	result := r.ensure(context.Background())
	paths := make([]string, 0, result.built)
	for _, status := range result.statuses {
		if status.State == Built {
			paths = append(paths, status.ArchivePath)
		}
	}
	return paths
}

// FixtureNames returns the logical names of every fixture the
// registry attempted, in catalog order, regardless of build outcome.
func (r *Registry) FixtureNames() []string {
	names := make([]string, len(r.catalog))
	for i, fx := range r.catalog {
		names[i] = fx.Name
	}
	return names
}

// Archive returns the archive path for a Built fixture by name.
func (r *Registry) Archive(name string) (string, bool) {
	path, ok := r.ensure(context.Background()).archives[name]
	return path, ok
}

// Statuses returns a copy of the per-fixture outcomes in catalog
// order.
func (r *Registry) Statuses() []Status {
	result := r.ensure(context.Background())
	return append([]Status(nil), result.statuses...)
}

// Cleanup removes the registry-created work directory and the
// archives in it. Best-effort hygiene: archives are process-scoped
// temporaries and the OS reclaims them if this is never called or
// fails. A caller-provided WorkDir is left alone.
func (r *Registry) Cleanup() error {
	if !r.ownWork {
		return nil
	}
	if err := os.RemoveAll(r.workDir); err != nil {
		return fmt.Errorf("removing %s: %w", r.workDir, err)
	}
	return nil
}

// Copyright 2026 The Foundry Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive packages a compiled fixture tree into a zip
// container. Every regular file in the tree except original sources
// becomes an entry named by its forward-slash relative path, and a
// manifest entry records the container format version plus a BLAKE3
// digest listing for the packed content.
package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the archive format version written into the
// manifest. Consumers check this before loading an archive.
const FormatVersion = "1"

// ManifestName is the in-archive entry name of the manifest.
const ManifestName = "manifest.yaml"

// copyBufferSize bounds the per-file streaming buffer. File contents
// are never loaded into memory whole.
const copyBufferSize = 32 * 1024

// ErrWriteFailed indicates an I/O failure while writing an archive.
// The partially written archive is not usable and must be discarded
// by the caller.
var ErrWriteFailed = errors.New("archive write failed")

// Entry describes one packed file in the manifest.
type Entry struct {
	// Path is the forward-slash relative path of the file, identical
	// to its in-archive entry name.
	Path string `yaml:"path"`

	// Size is the uncompressed size in bytes.
	Size int64 `yaml:"size"`

	// Digest is the lowercase hex BLAKE3-256 digest of the file
	// contents.
	Digest string `yaml:"blake3"`
}

// Manifest is the metadata written as the archive's manifest entry.
type Manifest struct {
	FormatVersion string  `yaml:"format_version"`
	Entries       []Entry `yaml:"entries"`
}

// PackConfig holds configuration for a single Pack call.
type PackConfig struct {
	// SourceDir is the directory tree to package.
	SourceDir string

	// Destination is the path of the archive file to create. An
	// existing file is truncated.
	Destination string

	// ExcludeSuffixes lists filename suffixes to leave out of the
	// archive (the original source files). Defaults to [".go"].
	ExcludeSuffixes []string

	// Logger for packaging operations. Defaults to slog.Default().
	Logger *slog.Logger
}

// Pack walks config.SourceDir and writes every regular file whose
// name does not carry an excluded suffix into a new zip archive at
// config.Destination, preserving relative paths with forward-slash
// separators. The walk order is lexical, so entry order is
// deterministic. Returns the manifest that was written as the final
// archive entry.
//
// Any I/O error aborts packaging and is reported as ErrWriteFailed;
// the destination file is left behind in an undefined state.
func Pack(config PackConfig) (*Manifest, error) {
	if config.SourceDir == "" {
		return nil, fmt.Errorf("source directory is required")
	}
	if config.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}
	excluded := config.ExcludeSuffixes
	if excluded == nil {
		excluded = []string{".go"}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	output, err := os.Create(config.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrWriteFailed, config.Destination, err)
	}
	defer output.Close()

	writer := zip.NewWriter(output)
	manifest := &Manifest{FormatVersion: FormatVersion}
	buffer := make([]byte, copyBufferSize)

	walkErr := filepath.WalkDir(config.SourceDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		for _, suffix := range excluded {
			if strings.HasSuffix(entry.Name(), suffix) {
				return nil
			}
		}

		relative, err := filepath.Rel(config.SourceDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(relative)

		packed, err := packFile(writer, path, name, buffer)
		if err != nil {
			return err
		}
		manifest.Entries = append(manifest.Entries, packed)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: packing %s: %v", ErrWriteFailed, config.SourceDir, walkErr)
	}

	if err := writeManifest(writer, manifest); err != nil {
		return nil, fmt.Errorf("%w: writing manifest: %v", ErrWriteFailed, err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing %s: %v", ErrWriteFailed, config.Destination, err)
	}
	if err := output.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing %s: %v", ErrWriteFailed, config.Destination, err)
	}

	logger.Debug("packed archive",
		"destination", config.Destination,
		"entries", len(manifest.Entries))
	return manifest, nil
}

// packFile streams one file into the archive and returns its manifest
// entry. The digest is computed during the copy, so the file is read
// exactly once.
func packFile(writer *zip.Writer, path, name string, buffer []byte) (Entry, error) {
	input, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer input.Close()

	destination, err := writer.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return Entry{}, err
	}

	hasher := blake3.New()
	size, err := io.CopyBuffer(io.MultiWriter(destination, hasher), input, buffer)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %s: %w", name, err)
	}

	return Entry{
		Path:   name,
		Size:   size,
		Digest: fmt.Sprintf("%x", hasher.Sum(nil)),
	}, nil
}

// writeManifest serializes the manifest as the final archive entry.
// The manifest is written last so that it can list every packed entry,
// but it is addressable by name, so readers are not order-sensitive.
func writeManifest(writer *zip.Writer, manifest *Manifest) error {
	body, err := yaml.Marshal(manifest)
	if err != nil {
		return err
	}
	destination, err := writer.CreateHeader(&zip.FileHeader{
		Name:   ManifestName,
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	if _, err := destination.Write(body); err != nil {
		return err
	}
	return nil
}

// ReadManifest opens an archive and parses its manifest entry. Used
// by consumers that want to verify archive contents before loading.
func ReadManifest(path string) (*Manifest, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != ManifestName {
			continue
		}
		contents, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening manifest in %s: %w", path, err)
		}
		defer contents.Close()

		body, err := io.ReadAll(contents)
		if err != nil {
			return nil, fmt.Errorf("reading manifest in %s: %w", path, err)
		}
		var manifest Manifest
		if err := yaml.Unmarshal(body, &manifest); err != nil {
			return nil, fmt.Errorf("parsing manifest in %s: %w", path, err)
		}
		return &manifest, nil
	}
	return nil, fmt.Errorf("%s has no %s entry", path, ManifestName)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compare

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
)

// FailureDirSuffix is appended to a FileStore's directory name to form the
// directory next to it that receives artifacts when no failure directory is
// configured.
const FailureDirSuffix = "-failures"

// Suffixes of the artifact files written next to each other for a failed
// comparison. The IDSuffix file holds the reference id the artifacts belong
// to.
const (
	CandidateSuffix = "_candidate.png"
	ReferenceSuffix = "_reference.png"
	DiffSuffix      = "_diff.png"
	IDSuffix        = "_id.txt"
)

// DefaultFailureDir returns the artifact directory used for references
// stored in dir: a sibling of dir, so artifacts never mix with references.
func DefaultFailureDir(dir string) string {
	dir = filepath.Clean(dir)
	if base := filepath.Base(dir); base == "." || base == ".." || base == string(filepath.Separator) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	return filepath.Join(filepath.Dir(dir), filepath.Base(dir)+FailureDirSuffix)
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithDiffer replaces the default exact PixelDiffer.
func WithDiffer(d Differ) Option {
	return func(c *Comparator) {
		c.differ = d
	}
}

// WithFailureDir sets where mismatch artifacts are written.
func WithFailureDir(dir string) Option {
	return func(c *Comparator) {
		c.failureDir = dir
	}
}

// WithLogger sets the logger. Nil discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Comparator) {
		c.log = l
	}
}

// Comparator verifies and records reference images.
type Comparator struct {
	store      Store
	differ     Differ
	failureDir string
	log        *slog.Logger
}

// New creates a Comparator over store.
//
// Without WithFailureDir, artifacts go to DefaultFailureDir of a
// *FileStore's directory, or below the system temp directory for other
// stores.
func New(store Store, opts ...Option) *Comparator {
	c := &Comparator{store: store}
	for _, opt := range opts {
		opt(c)
	}
	if c.differ == nil {
		c.differ = PixelDiffer{}
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if c.failureDir == "" {
		if fsStore, ok := store.(*FileStore); ok {
			c.failureDir = DefaultFailureDir(fsStore.Dir)
		} else {
			c.failureDir = filepath.Join(os.TempDir(), "golden"+FailureDirSuffix)
		}
	}
	return c
}

// Store returns the reference store.
func (c *Comparator) Store() Store {
	return c.store
}

// FailureDir returns the artifact directory.
func (c *Comparator) FailureDir() string {
	return c.failureDir
}

// Compare checks candidate against the reference stored under id.
//
// It returns a *MissingReferenceError when there is no reference and a
// *MismatchError when the Differ rejects the candidate. Store and artifact
// I/O errors are returned as-is (wrapped).
func (c *Comparator) Compare(ctx context.Context, id string, candidate []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	reference, err := c.store.Read(id)
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingReferenceError{ID: id, Location: c.store.Location(id)}
	}
	if err != nil {
		return fmt.Errorf("compare: read reference %q: %w", id, err)
	}

	res, err := c.differ.Diff(candidate, reference)
	if err != nil {
		return fmt.Errorf("compare: %q: %w", id, err)
	}
	if res.Match {
		c.log.Debug("compare: match", "id", id, "diff_percent", res.DiffPercent)
		return nil
	}

	artifacts, werr := c.writeArtifacts(id, candidate, reference, res)
	mismatch := &MismatchError{
		ID:          id,
		Reason:      res.Reason,
		DiffPixels:  res.DiffPixels,
		DiffPercent: res.DiffPercent,
		Artifacts:   artifacts,
	}
	c.log.Warn("compare: mismatch",
		"id", id,
		"diff_pixels", res.DiffPixels,
		"diff_percent", res.DiffPercent,
		"artifacts", filepath.Dir(artifacts.Candidate))
	return multierr.Append(mismatch, werr)
}

// Record stores candidate as the reference for id.
func (c *Comparator) Record(ctx context.Context, id string, candidate []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.store.Write(id, candidate); err != nil {
		return fmt.Errorf("compare: record %q: %w", id, err)
	}
	c.log.Info("compare: recorded reference", "id", id, "location", c.store.Location(id), "bytes", len(candidate))
	return nil
}

// ArtifactPaths returns where the artifacts of id are written.
func (c *Comparator) ArtifactPaths(id string) Artifacts {
	stem := strings.TrimSuffix(id, path.Ext(id))
	base := filepath.Join(c.failureDir, filepath.FromSlash(stem))
	return Artifacts{
		Candidate: base + CandidateSuffix,
		Reference: base + ReferenceSuffix,
		Diff:      base + DiffSuffix,
	}
}

func (c *Comparator) writeArtifacts(id string, candidate, reference []byte, res Result) (Artifacts, error) {
	paths := c.ArtifactPaths(id)
	if err := os.MkdirAll(filepath.Dir(paths.Candidate), 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("compare: artifacts for %q: %w", id, err)
	}

	var written Artifacts
	var err error
	idFile := strings.TrimSuffix(paths.Candidate, CandidateSuffix) + IDSuffix
	if er := os.WriteFile(idFile, []byte(id+"\n"), 0o644); er != nil {
		err = multierr.Append(err, fmt.Errorf("compare: write id: %w", er))
	}
	if er := os.WriteFile(paths.Candidate, candidate, 0o644); er != nil {
		err = multierr.Append(err, fmt.Errorf("compare: write candidate: %w", er))
	} else {
		written.Candidate = paths.Candidate
	}
	if er := os.WriteFile(paths.Reference, reference, 0o644); er != nil {
		err = multierr.Append(err, fmt.Errorf("compare: write reference copy: %w", er))
	} else {
		written.Reference = paths.Reference
	}
	if res.Diff != nil {
		if er := imaging.Save(res.Diff, paths.Diff); er != nil {
			err = multierr.Append(err, fmt.Errorf("compare: write diff: %w", er))
		} else {
			written.Diff = paths.Diff
		}
	} else {
		// A stale diff from an earlier run would be misleading.
		if er := os.Remove(paths.Diff); er != nil && !errors.Is(er, fs.ErrNotExist) {
			err = multierr.Append(err, fmt.Errorf("compare: remove stale diff: %w", er))
		}
	}
	return written, err
}

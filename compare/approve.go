// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compare

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
)

// Approve promotes every candidate artifact below failureDir to a
// reference in store and removes its artifacts. It returns the approved
// ids; failures do not stop the remaining approvals and are returned
// combined.
//
// The reference id is read from the IDSuffix file next to the candidate;
// without one, the candidate's path with a ".png" extension is used.
// A candidate is only approved when its content is an image.
func Approve(failureDir string, store Store) ([]string, error) {
	var candidates []string
	walkErr := filepath.WalkDir(failureDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), CandidateSuffix) {
			candidates = append(candidates, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("compare: approve: %w", walkErr)
	}

	var approved []string
	var err error
	for _, p := range candidates {
		id, er := approveOne(failureDir, p, store)
		if er != nil {
			err = multierr.Append(err, er)
			continue
		}
		approved = append(approved, id)
	}
	return approved, err
}

func approveOne(failureDir, candidate string, store Store) (string, error) {
	stem := strings.TrimSuffix(candidate, CandidateSuffix)
	id, err := artifactID(failureDir, stem)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		return "", fmt.Errorf("compare: approve %q: %w", id, err)
	}
	if !filetype.IsImage(data) {
		return "", fmt.Errorf("compare: approve %q: candidate is not an image", id)
	}
	if err := store.Write(id, data); err != nil {
		return "", fmt.Errorf("compare: approve %q: %w", id, err)
	}

	for _, suffix := range []string{CandidateSuffix, ReferenceSuffix, DiffSuffix, IDSuffix} {
		if er := os.Remove(stem + suffix); er != nil && !errors.Is(er, fs.ErrNotExist) {
			err = multierr.Append(err, er)
		}
	}
	return id, err
}

func artifactID(failureDir, stem string) (string, error) {
	data, err := os.ReadFile(stem + IDSuffix)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("compare: approve: empty id in %s", stem+IDSuffix)
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("compare: approve: %w", err)
	}

	rel, err := filepath.Rel(failureDir, stem)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel) + ".png", nil
}

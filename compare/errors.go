// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compare

import (
	"errors"
	"fmt"
)

// ErrMissingReference is wrapped by MissingReferenceError.
var ErrMissingReference = errors.New("compare: missing reference")

// MissingReferenceError is returned when no reference is stored for an id
// while verifying.
type MissingReferenceError struct {
	ID       string
	Location string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("compare: no reference for %q at %s (run in record mode to create it)", e.ID, e.Location)
}

// Unwrap returns ErrMissingReference.
func (e *MissingReferenceError) Unwrap() error {
	return ErrMissingReference
}

// Artifacts are the files written for a failed comparison. Empty fields
// were not written.
type Artifacts struct {
	Candidate string
	Reference string
	Diff      string
}

// MismatchError reports a failed comparison.
type MismatchError struct {
	ID          string
	Reason      string
	DiffPixels  int
	DiffPercent float64
	Artifacts   Artifacts
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("compare: %q does not match its reference", e.ID)
	switch {
	case e.Reason != "":
		msg += ": " + e.Reason
	default:
		msg += fmt.Sprintf(": %.2f%% (%d pixels) differ", e.DiffPercent, e.DiffPixels)
	}
	if e.Artifacts.Diff != "" {
		msg += "; diff written to " + e.Artifacts.Diff
	} else if e.Artifacts.Candidate != "" {
		msg += "; candidate written to " + e.Artifacts.Candidate
	}
	return msg
}

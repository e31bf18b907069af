// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import (
	"errors"
	"fmt"
)

// Errors wrapped by ConfigurationError.
var (
	// ErrNotConfigured is returned when a nil *Config is used.
	ErrNotConfigured = errors.New("golden: not configured")

	// ErrNotDevice is returned when orientation is changed on a
	// configuration that is not a device.
	ErrNotDevice = errors.New("golden: configuration is not a device")

	// ErrNotTight is returned when a device does not have tight
	// constraints.
	ErrNotTight = errors.New("golden: device constraints are not tight")

	// ErrInvalidConfiguration is returned for configurations that cannot be
	// rendered (empty name, unsatisfiable constraints, non-positive ratio).
	ErrInvalidConfiguration = errors.New("golden: invalid configuration")

	// ErrNameCollision is returned when two different (name, configuration)
	// pairs map to the same reference file.
	ErrNameCollision = errors.New("golden: reference file name collision")

	// ErrNoSession is returned when matching without a session.
	ErrNoSession = errors.New("golden: no session")
)

// ConfigurationError reports a violated precondition. It is not
// recoverable: the test setup itself is wrong.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return "golden: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(op string, err error) error {
	return &ConfigurationError{Op: op, Err: err}
}

func configErrf(op string, base error, format string, args ...any) error {
	return &ConfigurationError{Op: op, Err: fmt.Errorf("%w: "+format, append([]any{base}, args...)...)}
}

// MatchError attributes a failure to one request of a match.
type MatchError struct {
	Name          string
	Configuration string
	Err           error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("golden: %s [%s]: %v", e.Name, e.Configuration, e.Err)
}

// Unwrap returns the underlying error.
func (e *MatchError) Unwrap() error {
	return e.Err
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sizing computes the surface size a golden image is rendered at.
//
// Two strategies are provided:
//
//   - [Engine.ShrinkToFit] sizes the surface to the natural size of one
//     element, clamped to the constraints.
//   - [Engine.ExpandToContent] grows the surface so that scrollable regions
//     are fully revealed, clamped to the constraints.
//
// Both operate on a live [host.Session]: they resize the surface and settle
// the tree, and leave the session at the computed size.
package sizing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/golden/host"
	"github.com/gogpu/golden/layout"
)

// SeedExtent replaces a zero minimum during the seed pass of
// ExpandToContent so the first layout does not run on an empty surface.
const SeedExtent = 100

// Errors.
var (
	// ErrInvalidConstraints is returned for constraints with min > max,
	// negative or non-finite minimums.
	ErrInvalidConstraints = errors.New("sizing: constraints are not satisfiable")

	// ErrUnboundedExtent is returned when the computed size would be
	// infinite: an infinite scrollable (or natural size) on an axis whose
	// maximum is unbounded.
	ErrUnboundedExtent = errors.New("sizing: infinite extent on an unbounded axis")
)

// Engine resizes a session's surface. The zero value is ready to use.
type Engine struct {
	// Logger receives debug output about each sizing decision.
	// Nil discards it.
	Logger *slog.Logger
}

func (e *Engine) log() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// ShrinkToFit sets the surface to the natural size of the first element f
// matches, clamped per axis into c, and settles the session.
//
// The session is settled once before f runs, so that a tree which has never
// been laid out exposes its elements. An infinite surface is first replaced
// by Seed(c).
//
// A natural size below c's minimum yields the minimum. Applying
// ShrinkToFit twice with the same inputs yields the same size.
func (e *Engine) ShrinkToFit(ctx context.Context, s host.Session, f host.Finder, c layout.Constraints) (layout.Size, error) {
	if !c.IsSatisfiable() {
		return layout.Size{}, fmt.Errorf("%w: %v", ErrInvalidConstraints, c)
	}

	if !s.SurfaceSize().IsFinite() {
		s.SetSurfaceSize(Seed(c))
	}
	if err := s.Settle(ctx); err != nil {
		return layout.Size{}, fmt.Errorf("sizing: settle before shrink: %w", err)
	}

	el, err := host.First(s.Root(), f)
	if err != nil {
		return layout.Size{}, fmt.Errorf("sizing: shrink target: %w", err)
	}

	natural := s.NaturalSize(el)
	size := c.Constrain(natural)
	if !size.IsFinite() {
		return layout.Size{}, fmt.Errorf("%w: natural size %v within %v", ErrUnboundedExtent, natural, c)
	}

	e.log().Debug("sizing: shrink to fit",
		"target", f.String(),
		"natural", natural.String(),
		"constraints", c.String(),
		"size", size.String())

	s.SetSurfaceSize(size)
	if err := s.Settle(ctx); err != nil {
		return layout.Size{}, fmt.Errorf("sizing: settle after shrink: %w", err)
	}
	return size, nil
}

// ExpandToContent grows the surface so the scrollables reported by src are
// fully revealed.
//
// The surface is first set to the smallest size c admits (using
// SeedExtent for a zero minimum) and settled, so that scroll extents can be
// measured. Every snapshot src then returns adds its remaining extent to the
// width (horizontal) or height (vertical); the sum is added to the seed
// size and clamped into c.
//
// An infinite extent collapses that axis to c's maximum, which therefore
// must be finite; otherwise ErrUnboundedExtent is returned and the surface
// stays at the seed size.
func (e *Engine) ExpandToContent(ctx context.Context, s host.Session, c layout.Constraints, src Source) (layout.Size, error) {
	if !c.IsSatisfiable() {
		return layout.Size{}, fmt.Errorf("%w: %v", ErrInvalidConstraints, c)
	}

	seed := Seed(c)
	s.SetSurfaceSize(seed)
	if err := s.Settle(ctx); err != nil {
		return layout.Size{}, fmt.Errorf("sizing: settle seed: %w", err)
	}

	var snaps []Snapshot
	if src != nil {
		snaps = src(s.Root())
	}

	delta := Accumulate(snaps)
	if math.IsInf(delta.Width, 1) && !c.HasBoundedWidth() {
		return layout.Size{}, fmt.Errorf("%w: horizontal scrollable within %v", ErrUnboundedExtent, c)
	}
	if math.IsInf(delta.Height, 1) && !c.HasBoundedHeight() {
		return layout.Size{}, fmt.Errorf("%w: vertical scrollable within %v", ErrUnboundedExtent, c)
	}

	size := c.Constrain(seed.Add(delta))

	e.log().Debug("sizing: expand to content",
		"seed", seed.String(),
		"scrollables", len(snaps),
		"delta", delta.String(),
		"constraints", c.String(),
		"size", size.String())

	s.SetSurfaceSize(size)
	if err := s.Settle(ctx); err != nil {
		return layout.Size{}, fmt.Errorf("sizing: settle after expand: %w", err)
	}
	return size, nil
}

// Seed returns the size of the first ExpandToContent pass: c's minimum,
// with SeedExtent substituted on axes whose minimum is zero, kept inside c.
func Seed(c layout.Constraints) layout.Size {
	seed := c.Min()
	if seed.Width == 0 {
		seed.Width = SeedExtent
	}
	if seed.Height == 0 {
		seed.Height = SeedExtent
	}
	return c.Constrain(seed)
}

// Accumulate sums the remaining extents of snaps per axis. Negative extents
// count as zero.
func Accumulate(snaps []Snapshot) layout.Size {
	var d layout.Size
	for _, sn := range snaps {
		ext := sn.ExtentAfter
		if ext < 0 || math.IsNaN(ext) {
			ext = 0
		}
		switch sn.Axis {
		case layout.Horizontal:
			d.Width += ext
		default:
			d.Height += ext
		}
	}
	return d
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import (
	"context"

	"github.com/gogpu/golden/host"
	"github.com/gogpu/golden/layout"
	"github.com/gogpu/golden/sizing"
)

// Request is one golden assertion: render under Configuration, size the
// surface with Sizing, rasterize what Finder matches and compare it with
// the reference for (Name, Configuration).
type Request struct {
	// Name is the logical test name. It may contain slashes to group
	// references in subdirectories.
	Name string

	Configuration Configuration

	// Sizing selects how the surface size is computed. Nil means
	// ExpandAuto.
	Sizing Sizing

	// Finder locates the element to rasterize. Nil means the first paint
	// boundary in the tree.
	Finder host.Finder
}

func (r Request) sizing() Sizing {
	if r.Sizing == nil {
		return ExpandAuto()
	}
	return r.Sizing
}

func (r Request) finder() host.Finder {
	if r.Finder == nil {
		return host.ByPaintBoundary()
	}
	return r.Finder
}

// Sizing is one of ShrinkTo, ExpandAuto or ExpandWith.
type Sizing interface {
	resize(ctx context.Context, e *sizing.Engine, s host.Session, c layout.Constraints) (layout.Size, error)
	String() string
}

type shrinkTo struct {
	finder host.Finder
}

// ShrinkTo sizes the surface to the natural size of the first element f
// matches.
func ShrinkTo(f host.Finder) Sizing {
	return shrinkTo{finder: f}
}

func (z shrinkTo) resize(ctx context.Context, e *sizing.Engine, s host.Session, c layout.Constraints) (layout.Size, error) {
	if z.finder == nil {
		return layout.Size{}, configErrf("shrink", ErrInvalidConfiguration, "nil finder")
	}
	return e.ShrinkToFit(ctx, s, z.finder, c)
}

func (z shrinkTo) String() string {
	if z.finder == nil {
		return "shrink(<nil>)"
	}
	return "shrink(" + z.finder.String() + ")"
}

type expandAuto struct{}

// ExpandAuto grows the surface to reveal every scrollable whose remaining
// extent is finite.
func ExpandAuto() Sizing {
	return expandAuto{}
}

func (expandAuto) resize(ctx context.Context, e *sizing.Engine, s host.Session, c layout.Constraints) (layout.Size, error) {
	return e.ExpandToContent(ctx, s, c, sizing.AllFinite())
}

func (expandAuto) String() string { return "expand(auto)" }

type expandWith struct {
	src sizing.Source
}

// ExpandWith grows the surface by the snapshots src returns. A nil src
// contributes nothing, leaving the surface at the seed size.
func ExpandWith(src sizing.Source) Sizing {
	return expandWith{src: src}
}

// ExpandScrollables grows the surface to reveal the scrollables the
// finders match, finite or not.
func ExpandScrollables(finders ...host.Finder) Sizing {
	return expandWith{src: sizing.Matching(finders...)}
}

func (z expandWith) resize(ctx context.Context, e *sizing.Engine, s host.Session, c layout.Constraints) (layout.Size, error) {
	return e.ExpandToContent(ctx, s, c, z.src)
}

func (expandWith) String() string { return "expand(explicit)" }

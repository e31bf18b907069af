// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package host defines what the golden helpers need from a UI test host.
//
// A host is a retained-mode framework running inside a virtual surface
// whose size is under test control. The golden helpers never build widgets
// or lay them out themselves; they only resize the surface, ask the host to
// settle, query the element tree and rasterize a subtree.
//
// Required capabilities are grouped in [Session]. Optional capabilities
// (text scaling, locales) are expressed as separate interfaces that a
// session may implement, in the same way optional surface features are
// discovered with a type assertion.
package host

import (
	"context"
	"errors"

	"golang.org/x/text/language"

	"github.com/gogpu/golden/layout"
)

// Element is a node of the live element tree.
//
// Size reports the size assigned by the most recent layout pass.
type Element interface {
	Size() layout.Size
	Children() []Element
}

// Scrollable is an element with a scroll viewport.
type Scrollable interface {
	Element

	// ScrollAxis returns the direction the viewport scrolls in.
	ScrollAxis() layout.Axis

	// ExtentAfter returns the scrollable distance left beyond the
	// viewport. It is +Inf for unbounded (lazily built) content.
	ExtentAfter() float64
}

// PaintBoundary is an element that paints into its own layer and can be
// rasterized in isolation.
type PaintBoundary interface {
	Element
	IsPaintBoundary() bool
}

// Keyed is an element carrying a test key.
type Keyed interface {
	Element
	Key() string
}

// Session is a rendering session: one element tree inside one surface.
//
// Sessions are single-threaded. Callers must not use a session from
// several goroutines at once.
type Session interface {
	// Root returns the root of the element tree.
	Root() Element

	// SurfaceSize returns the logical size of the surface.
	SurfaceSize() layout.Size

	// SetSurfaceSize resizes the surface. The new size takes effect on the
	// next Settle.
	SetSurfaceSize(s layout.Size)

	// Settle runs layout until the tree is stable.
	Settle(ctx context.Context) error

	// NaturalSize measures e without the surface constraining it.
	NaturalSize(e Element) layout.Size

	// Rasterize renders the subtree rooted at e and returns encoded image
	// bytes.
	Rasterize(ctx context.Context, e Element) ([]byte, error)

	// SetDevicePixelRatio sets the number of physical pixels per logical
	// unit.
	SetDevicePixelRatio(ratio float64)

	// SetPhysicalSize overrides the size of the surface in physical pixels.
	SetPhysicalSize(s layout.Size)
}

// TextScaler is implemented by sessions that support text scaling.
type TextScaler interface {
	SetTextScaleFactor(f float64)
}

// Localizer is implemented by sessions that support locale overrides.
type Localizer interface {
	SetLocale(tag language.Tag)
}

// ErrNotFound is returned when a finder matches nothing.
var ErrNotFound = errors.New("host: no element found")

// Walk visits e and its descendants depth first, parents before children.
// Returning false from fn prunes the children of the visited element.
func Walk(e Element, fn func(Element) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		Walk(c, fn)
	}
}

// Scrollables returns every scrollable element under root in tree order.
func Scrollables(root Element) []Scrollable {
	var out []Scrollable
	Walk(root, func(e Element) bool {
		if s, ok := e.(Scrollable); ok {
			out = append(out, s)
		}
		return true
	})
	return out
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retained

import (
	"image/color"

	"golang.org/x/text/language"

	"github.com/gogpu/golden/host"
	"github.com/gogpu/golden/layout"
	"github.com/gogpu/golden/surface"
)

// Widget is a node of the retained tree.
type Widget interface {
	host.Element
	host.Keyed

	node() *Node

	// layout sizes the widget within c, lays out its children and records
	// their offsets relative to the widget.
	layout(c layout.Constraints, e *env) layout.Size

	// paint draws the widget and its children at their global positions.
	paint(s surface.Surface, e *env)
}

// Node holds the state every widget shares. It is embedded by all widgets.
type Node struct {
	id     string
	size   layout.Size
	offset surface.Point // relative to the parent
	origin surface.Point // global, assigned after layout
	kids   []Widget
}

func (n *Node) node() *Node { return n }

// Size implements host.Element.
func (n *Node) Size() layout.Size { return n.size }

// Key implements host.Keyed.
func (n *Node) Key() string { return n.id }

// Children implements host.Element.
func (n *Node) Children() []host.Element {
	out := make([]host.Element, len(n.kids))
	for i, k := range n.kids {
		out[i] = k
	}
	return out
}

// Origin returns the global top-left corner assigned by the last layout.
func (n *Node) Origin() surface.Point { return n.origin }

// Bounds returns the global rectangle assigned by the last layout.
func (n *Node) Bounds() surface.Rect {
	return surface.R(n.origin.X, n.origin.Y, n.size.Width, n.size.Height)
}

// Key sets the test key of w and returns it.
func Key[W Widget](id string, w W) W {
	w.node().id = id
	return w
}

// env carries the device parameters layout and painting depend on.
type env struct {
	textScale float64
	locale    language.Tag
	loaded    map[string]bool
}

// place assigns global origins below w.
func place(w Widget, origin surface.Point) {
	n := w.node()
	n.origin = origin
	for _, k := range n.kids {
		place(k, origin.Add(k.node().offset))
	}
}

func paintChildren(n *Node, s surface.Surface, e *env) {
	for _, k := range n.kids {
		k.paint(s, e)
	}
}

func fill(s surface.Surface, n *Node, c color.Color) {
	if c != nil {
		s.FillRect(n.Bounds(), c)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retained

import (
	"image/color"
	"math"

	"github.com/gogpu/golden/layout"
	"github.com/gogpu/golden/surface"
)

// viewport returns the main-axis extent a scroll view takes within c:
// the constraint maximum when bounded, otherwise the content extent.
func viewport(c layout.Constraints, axis layout.Axis, content float64) float64 {
	if c.IsBounded(axis) {
		return c.Max().Along(axis)
	}
	return content
}

func axisSize(axis layout.Axis, main, cross float64) layout.Size {
	if axis == layout.Horizontal {
		return layout.Sz(main, cross)
	}
	return layout.Sz(cross, main)
}

func axisPoint(axis layout.Axis, main float64) surface.Point {
	if axis == layout.Horizontal {
		return surface.Pt(main, 0)
	}
	return surface.Pt(0, main)
}

// crossConstraints gives children the full cross extent and an unbounded
// main axis.
func crossConstraints(c layout.Constraints, axis layout.Axis) layout.Constraints {
	if axis == layout.Horizontal {
		return layout.Constraints{MaxWidth: layout.Unbounded, MaxHeight: c.MaxHeight}
	}
	return layout.Constraints{MaxWidth: c.MaxWidth, MaxHeight: layout.Unbounded}
}

// Scroll is a viewport over a single, fully built child.
type Scroll struct {
	Node
	Axis       layout.Axis
	Child      Widget
	Offset     float64
	Background color.Color

	content  float64
	viewport float64
}

// NewScroll creates a scroll view.
func NewScroll(axis layout.Axis, child Widget) *Scroll {
	return &Scroll{Axis: axis, Child: child}
}

// ScrollAxis implements host.Scrollable.
func (s *Scroll) ScrollAxis() layout.Axis { return s.Axis }

// ExtentAfter implements host.Scrollable.
func (s *Scroll) ExtentAfter() float64 {
	return math.Max(0, s.content-s.Offset-s.viewport)
}

func (s *Scroll) layout(c layout.Constraints, e *env) layout.Size {
	s.kids = s.kids[:0]
	var content layout.Size
	if s.Child != nil {
		content = s.Child.layout(crossConstraints(c, s.Axis), e)
		s.Child.node().offset = axisPoint(s.Axis, -s.Offset)
		s.kids = append(s.kids, s.Child)
	}
	s.content = content.Along(s.Axis)

	cross := content.Width
	if s.Axis == layout.Horizontal {
		cross = content.Height
	}
	s.size = c.Constrain(axisSize(s.Axis, viewport(c, s.Axis, s.content), cross))
	s.viewport = s.size.Along(s.Axis)
	return s.size
}

func (s *Scroll) paint(sf surface.Surface, e *env) {
	fill(sf, &s.Node, s.Background)
	sf.PushClip(s.Bounds())
	paintChildren(&s.Node, sf, e)
	sf.PopClip()
}

// Infinite is the Count of a LazyList without an end.
const Infinite = -1

// LazyList is a scroll view that builds only the items its viewport shows.
// Items have a fixed main-axis extent. With Count == Infinite the list has
// no end and its remaining extent is always infinite.
type LazyList struct {
	Node
	Axis       layout.Axis
	ItemExtent float64
	Count      int
	Builder    func(i int) Widget
	Background color.Color

	built    map[int]Widget
	viewport float64
}

// NewLazyList creates a lazily built list.
func NewLazyList(axis layout.Axis, itemExtent float64, count int, builder func(int) Widget) *LazyList {
	return &LazyList{Axis: axis, ItemExtent: itemExtent, Count: count, Builder: builder}
}

// ScrollAxis implements host.Scrollable.
func (l *LazyList) ScrollAxis() layout.Axis { return l.Axis }

// ExtentAfter implements host.Scrollable.
func (l *LazyList) ExtentAfter() float64 {
	if l.Count == Infinite {
		return math.Inf(1)
	}
	return math.Max(0, l.total()-l.viewport)
}

func (l *LazyList) total() float64 {
	if l.Count == Infinite {
		return math.Inf(1)
	}
	return float64(l.Count) * l.ItemExtent
}

func (l *LazyList) item(i int) Widget {
	if l.built == nil {
		l.built = make(map[int]Widget)
	}
	w, ok := l.built[i]
	if !ok {
		w = l.Builder(i)
		l.built[i] = w
	}
	return w
}

func (l *LazyList) layout(c layout.Constraints, e *env) layout.Size {
	l.kids = l.kids[:0]
	main := viewport(c, l.Axis, l.total())

	visible := 0
	if l.ItemExtent > 0 && !math.IsInf(main, 1) && l.Builder != nil {
		visible = int(math.Ceil(main / l.ItemExtent))
		if l.Count != Infinite && visible > l.Count {
			visible = l.Count
		}
	}

	crossMax := c.MaxWidth
	if l.Axis == layout.Horizontal {
		crossMax = c.MaxHeight
	}
	ext := l.ItemExtent
	itemC := layout.Constraints{MinHeight: ext, MaxHeight: ext, MaxWidth: crossMax}
	if l.Axis == layout.Horizontal {
		itemC = layout.Constraints{MinWidth: ext, MaxWidth: ext, MaxHeight: crossMax}
	}

	var cross float64
	for i := 0; i < visible; i++ {
		w := l.item(i)
		sz := w.layout(itemC, e)
		w.node().offset = axisPoint(l.Axis, float64(i)*l.ItemExtent)
		if l.Axis == layout.Horizontal {
			cross = math.Max(cross, sz.Height)
		} else {
			cross = math.Max(cross, sz.Width)
		}
		l.kids = append(l.kids, w)
	}

	l.size = c.Constrain(axisSize(l.Axis, main, cross))
	l.viewport = l.size.Along(l.Axis)
	return l.size
}

func (l *LazyList) paint(sf surface.Surface, e *env) {
	fill(sf, &l.Node, l.Background)
	sf.PushClip(l.Bounds())
	paintChildren(&l.Node, sf, e)
	sf.PopClip()
}

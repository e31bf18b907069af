// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sizing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/golden/host"
	"github.com/gogpu/golden/layout"
)

// fakeBox is an element with a fixed natural size.
type fakeBox struct {
	key     string
	natural layout.Size
	size    layout.Size
	kids    []host.Element
}

func (b *fakeBox) Size() layout.Size        { return b.size }
func (b *fakeBox) Children() []host.Element { return b.kids }
func (b *fakeBox) Key() string              { return b.key }

// fakeList is a scroll viewport filling the surface. Content is the total
// scroll extent; +Inf models a lazily built list.
type fakeList struct {
	fakeBox
	axis    layout.Axis
	content float64
}

func (l *fakeList) ScrollAxis() layout.Axis { return l.axis }

func (l *fakeList) ExtentAfter() float64 {
	if math.IsInf(l.content, 1) {
		return l.content
	}
	return math.Max(0, l.content-l.size.Along(l.axis))
}

type fakeSession struct {
	root    *fakeBox
	lists   []*fakeList
	surface layout.Size
	settles int
	sizes   []layout.Size

	// unsettled children appear under root on the first Settle.
	unsettled []host.Element
}

func (s *fakeSession) Root() host.Element            { return s.root }
func (s *fakeSession) SurfaceSize() layout.Size      { return s.surface }
func (s *fakeSession) SetSurfaceSize(sz layout.Size) { s.surface = sz; s.sizes = append(s.sizes, sz) }
func (s *fakeSession) SetDevicePixelRatio(float64)   {}
func (s *fakeSession) SetPhysicalSize(layout.Size)   {}

func (s *fakeSession) NaturalSize(e host.Element) layout.Size {
	return e.(*fakeBox).natural
}

func (s *fakeSession) Rasterize(context.Context, host.Element) ([]byte, error) {
	return nil, nil
}

func (s *fakeSession) Settle(context.Context) error {
	s.settles++
	if s.unsettled != nil {
		s.root.kids, s.unsettled = s.unsettled, nil
	}
	s.root.size = s.surface
	for _, l := range s.lists {
		l.size = s.surface
	}
	return nil
}

func newBoxSession(natural layout.Size) *fakeSession {
	box := &fakeBox{key: "target", natural: natural}
	root := &fakeBox{key: "root", kids: []host.Element{box}}
	return &fakeSession{root: root}
}

func newListSession(lists ...*fakeList) *fakeSession {
	root := &fakeBox{key: "root"}
	for _, l := range lists {
		root.kids = append(root.kids, l)
	}
	return &fakeSession{root: root, lists: lists}
}

func TestShrinkToFit(t *testing.T) {
	c := layout.Constraints{MinWidth: 100, MaxWidth: 200, MinHeight: 100, MaxHeight: 200}

	tests := []struct {
		name    string
		natural layout.Size
		want    layout.Size
	}{
		{"within constraints", layout.Sz(150, 150), layout.Sz(150, 150)},
		{"below minimum", layout.Sz(50, 50), layout.Sz(100, 100)},
		{"above maximum", layout.Sz(400, 250), layout.Sz(200, 200)},
		{"at bound", layout.Sz(200, 100), layout.Sz(200, 100)},
		{"independent axes", layout.Sz(20, 180), layout.Sz(100, 180)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newBoxSession(tt.natural)
			var e Engine

			got, err := e.ShrinkToFit(context.Background(), s, host.ByKey("target"), c)
			if err != nil {
				t.Fatalf("ShrinkToFit: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShrinkToFit = %v, want %v", got, tt.want)
			}
			if s.surface != tt.want {
				t.Errorf("surface = %v, want %v", s.surface, tt.want)
			}
			if s.settles != 2 {
				t.Errorf("settles = %d, want 2", s.settles)
			}
		})
	}
}

func TestShrinkToFitUnsettledTree(t *testing.T) {
	box := &fakeBox{key: "card", natural: layout.Sz(150, 150)}
	s := &fakeSession{
		root:      &fakeBox{key: "root"},
		surface:   layout.Sz(math.Inf(1), math.Inf(1)),
		unsettled: []host.Element{box},
	}
	c := layout.Constraints{MinWidth: 100, MaxWidth: 200, MinHeight: 100, MaxHeight: 200}
	var e Engine

	got, err := e.ShrinkToFit(context.Background(), s, host.ByKey("card"), c)
	if err != nil {
		t.Fatalf("ShrinkToFit: %v", err)
	}
	if got != layout.Sz(150, 150) {
		t.Errorf("ShrinkToFit = %v, want 150x150", got)
	}
	if len(s.sizes) != 2 || s.sizes[0] != layout.Sz(100, 100) {
		t.Errorf("surface sizes = %v, want seed 100x100 then final", s.sizes)
	}
}

func TestShrinkToFitIdempotent(t *testing.T) {
	c := layout.Constraints{MinWidth: 10, MaxWidth: 300, MinHeight: 10, MaxHeight: 300}
	s := newBoxSession(layout.Sz(123, 45))
	var e Engine

	first, err := e.ShrinkToFit(context.Background(), s, host.ByKey("target"), c)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.ShrinkToFit(context.Background(), s, host.ByKey("target"), c)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("second pass = %v, first = %v", second, first)
	}
}

func TestShrinkToFitErrors(t *testing.T) {
	var e Engine
	ctx := context.Background()

	t.Run("missing target", func(t *testing.T) {
		s := newBoxSession(layout.Sz(1, 1))
		_, err := e.ShrinkToFit(ctx, s, host.ByKey("nope"), layout.Unconstrained())
		if !errors.Is(err, host.ErrNotFound) {
			t.Errorf("err = %v, want host.ErrNotFound", err)
		}
	})

	t.Run("invalid constraints", func(t *testing.T) {
		s := newBoxSession(layout.Sz(1, 1))
		c := layout.Constraints{MinWidth: 5, MaxWidth: 1}
		_, err := e.ShrinkToFit(ctx, s, host.ByKey("target"), c)
		if !errors.Is(err, ErrInvalidConstraints) {
			t.Errorf("err = %v, want ErrInvalidConstraints", err)
		}
	})

	t.Run("infinite natural size", func(t *testing.T) {
		s := newBoxSession(layout.Sz(10, math.Inf(1)))
		_, err := e.ShrinkToFit(ctx, s, host.ByKey("target"), layout.Unconstrained())
		if !errors.Is(err, ErrUnboundedExtent) {
			t.Errorf("err = %v, want ErrUnboundedExtent", err)
		}
	})
}

func TestExpandToContentFiniteList(t *testing.T) {
	// Ten rows of 200 in a viewport that is 100 high at the seed size.
	list := &fakeList{fakeBox: fakeBox{key: "list"}, axis: layout.Vertical, content: 10 * 200}
	s := newListSession(list)
	c := layout.Constraints{MinWidth: 100, MaxWidth: 100, MaxHeight: layout.Unbounded}
	var e Engine

	got, err := e.ExpandToContent(context.Background(), s, c, AllFinite())
	if err != nil {
		t.Fatalf("ExpandToContent: %v", err)
	}
	if got != layout.Sz(100, 2000) {
		t.Errorf("ExpandToContent = %v, want 100x2000", got)
	}
	if len(s.sizes) != 2 || s.sizes[0] != layout.Sz(100, 100) {
		t.Errorf("surface sizes = %v, want seed 100x100 then final", s.sizes)
	}
	if s.settles != 2 {
		t.Errorf("settles = %d, want 2", s.settles)
	}
}

func TestExpandToContentInfiniteList(t *testing.T) {
	list := &fakeList{fakeBox: fakeBox{key: "feed"}, axis: layout.Vertical, content: math.Inf(1)}
	s := newListSession(list)
	c := layout.Constraints{MinWidth: 100, MaxWidth: 100, MinHeight: 100, MaxHeight: 2000}
	var e Engine

	got, err := e.ExpandToContent(context.Background(), s, c, AllInfinite())
	if err != nil {
		t.Fatalf("ExpandToContent: %v", err)
	}
	if got != layout.Sz(100, 2000) {
		t.Errorf("ExpandToContent = %v, want 100x2000", got)
	}
}

func TestExpandToContentInfiniteUnbounded(t *testing.T) {
	list := &fakeList{fakeBox: fakeBox{key: "feed"}, axis: layout.Vertical, content: math.Inf(1)}
	s := newListSession(list)
	c := layout.Constraints{MinWidth: 100, MaxWidth: 100, MaxHeight: layout.Unbounded}
	var e Engine

	_, err := e.ExpandToContent(context.Background(), s, c, AllInfinite())
	if !errors.Is(err, ErrUnboundedExtent) {
		t.Fatalf("err = %v, want ErrUnboundedExtent", err)
	}
	if s.surface != layout.Sz(100, 100) {
		t.Errorf("surface = %v, want seed size", s.surface)
	}
}

func TestExpandToContentClampsToConstraints(t *testing.T) {
	// Property: height == clamp(seed + D, minH, maxH) for finite extents.
	tests := []struct {
		name    string
		c       layout.Constraints
		extents []float64
		want    float64
	}{
		{"fits", layout.Constraints{MaxWidth: 300, MinHeight: 200, MaxHeight: 1000}, []float64{150, 250}, 600},
		{"capped", layout.Constraints{MaxWidth: 300, MinHeight: 200, MaxHeight: 500}, []float64{150, 250}, 500},
		{"no scroll", layout.Constraints{MaxWidth: 300, MinHeight: 200, MaxHeight: 500}, nil, 200},
		{"zero min seeds 100", layout.Constraints{MaxWidth: 300, MaxHeight: 500}, []float64{50}, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snaps []Snapshot
			for _, ext := range tt.extents {
				snaps = append(snaps, Snapshot{Axis: layout.Vertical, ExtentAfter: ext})
			}
			s := newListSession()
			var e Engine

			got, err := e.ExpandToContent(context.Background(), s, tt.c, Fixed(snaps...))
			if err != nil {
				t.Fatal(err)
			}
			if got.Height != tt.want {
				t.Errorf("height = %v, want %v", got.Height, tt.want)
			}
			if !tt.c.Contains(got) {
				t.Errorf("%v outside %v", got, tt.c)
			}
		})
	}
}

func TestExpandToContentBothAxes(t *testing.T) {
	v := &fakeList{fakeBox: fakeBox{key: "v"}, axis: layout.Vertical, content: 700}
	h := &fakeList{fakeBox: fakeBox{key: "h"}, axis: layout.Horizontal, content: 400}
	s := newListSession(v, h)
	c := layout.Constraints{MaxWidth: 1000, MaxHeight: 1000}
	var e Engine

	got, err := e.ExpandToContent(context.Background(), s, c, Matching(host.ByKey("v"), host.ByKey("h"), host.ByKey("v")))
	if err != nil {
		t.Fatal(err)
	}
	if got != layout.Sz(400, 700) {
		t.Errorf("ExpandToContent = %v, want 400x700", got)
	}
}

func TestSeed(t *testing.T) {
	tests := []struct {
		name string
		c    layout.Constraints
		want layout.Size
	}{
		{"zero minimums", layout.Unconstrained(), layout.Sz(100, 100)},
		{"tight", layout.Tight(layout.Sz(375, 667)), layout.Sz(375, 667)},
		{"small max", layout.Loose(layout.Sz(40, 60)), layout.Sz(40, 60)},
		{"width only", layout.Constraints{MinWidth: 320, MaxWidth: 320, MaxHeight: layout.Unbounded}, layout.Sz(320, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Seed(tt.c); got != tt.want {
				t.Errorf("Seed(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestAccumulate(t *testing.T) {
	d := Accumulate([]Snapshot{
		{Axis: layout.Vertical, ExtentAfter: 100},
		{Axis: layout.Vertical, ExtentAfter: 50},
		{Axis: layout.Horizontal, ExtentAfter: 30},
		{Axis: layout.Horizontal, ExtentAfter: -10},
	})
	if d != layout.Sz(30, 150) {
		t.Errorf("Accumulate = %v, want 30x150", d)
	}

	inf := Accumulate([]Snapshot{
		{Axis: layout.Vertical, ExtentAfter: 10},
		{Axis: layout.Vertical, ExtentAfter: math.Inf(1)},
	})
	if !math.IsInf(inf.Height, 1) {
		t.Errorf("height = %v, want +Inf", inf.Height)
	}
}

func TestSnapshotSources(t *testing.T) {
	fin := &fakeList{fakeBox: fakeBox{key: "fin"}, axis: layout.Vertical, content: 500}
	inf := &fakeList{fakeBox: fakeBox{key: "inf"}, axis: layout.Horizontal, content: math.Inf(1)}
	s := newListSession(fin, inf)
	s.surface = layout.Sz(100, 100)
	_ = s.Settle(context.Background())

	if got := AllFinite()(s.Root()); len(got) != 1 || got[0].ExtentAfter != 400 {
		t.Errorf("AllFinite = %v", got)
	}
	if got := AllInfinite()(s.Root()); len(got) != 1 || got[0].Axis != layout.Horizontal {
		t.Errorf("AllInfinite = %v", got)
	}
	if got := Matching(host.ByKey("root"))(s.Root()); len(got) != 0 {
		t.Errorf("Matching non-scrollable = %v, want none", got)
	}
}

// valueList is a scrollable held by value; its slice field makes the type
// non-comparable.
type valueList struct {
	key    string
	extent float64
	kids   []host.Element
}

func (l valueList) Size() layout.Size        { return layout.Sz(10, 10) }
func (l valueList) Children() []host.Element { return l.kids }
func (l valueList) Key() string              { return l.key }
func (l valueList) ScrollAxis() layout.Axis  { return layout.Vertical }
func (l valueList) ExtentAfter() float64     { return l.extent }

func TestMatchingNonComparableScrollable(t *testing.T) {
	root := &fakeBox{key: "root", kids: []host.Element{
		valueList{key: "v", extent: 30, kids: []host.Element{}},
	}}

	got := Matching(host.ByKey("v"))(root)
	if len(got) != 1 || got[0].ExtentAfter != 30 {
		t.Errorf("Matching = %v, want one snapshot of 30", got)
	}
}

func TestMatchingCountsElementOnce(t *testing.T) {
	list := &fakeList{fakeBox: fakeBox{key: "list"}, axis: layout.Vertical, content: 500}
	s := newListSession(list)
	s.surface = layout.Sz(100, 100)
	_ = s.Settle(context.Background())

	got := Matching(host.ByKey("list"), host.ByType[*fakeList]())(s.Root())
	if len(got) != 1 {
		t.Errorf("Matching = %v, want one snapshot", got)
	}
}

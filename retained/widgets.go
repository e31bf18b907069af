// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retained

import (
	"image/color"
	"math"
	"sort"

	"golang.org/x/text/language"

	"github.com/gogpu/golden/layout"
	"github.com/gogpu/golden/surface"
)

// Box is a rectangle with a preferred size and an optional child.
type Box struct {
	Node
	Width, Height float64
	Color         color.Color
	Border        color.Color
	Child         Widget
}

// NewBox creates a box of the given preferred size.
func NewBox(w, h float64, c color.Color) *Box {
	return &Box{Width: w, Height: h, Color: c}
}

func (b *Box) layout(c layout.Constraints, e *env) layout.Size {
	b.size = c.Constrain(layout.Sz(b.Width, b.Height))
	b.kids = b.kids[:0]
	if b.Child != nil {
		b.Child.layout(layout.Loose(b.size), e)
		b.Child.node().offset = surface.Point{}
		b.kids = append(b.kids, b.Child)
	}
	return b.size
}

func (b *Box) paint(s surface.Surface, e *env) {
	fill(s, &b.Node, b.Color)
	if b.Border != nil {
		s.StrokeRect(b.Bounds(), 1, b.Border)
	}
	paintChildren(&b.Node, s, e)
}

// Label is one line of text. Translations maps BCP 47 tags to localized
// text and is matched against the session locale.
type Label struct {
	Node
	Text         string
	Translations map[string]string
	Color        color.Color
}

// NewLabel creates a black label.
func NewLabel(text string) *Label {
	return &Label{Text: text, Color: color.Black}
}

// resolve returns the text for the session locale.
func (l *Label) resolve(locale language.Tag) string {
	if len(l.Translations) == 0 || locale == language.Und {
		return l.Text
	}
	keys := make([]string, 0, len(l.Translations))
	for k := range l.Translations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := []language.Tag{language.Und}
	texts := []string{l.Text}
	for _, k := range keys {
		tag, err := language.Parse(k)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		texts = append(texts, l.Translations[k])
	}
	_, idx, conf := language.NewMatcher(tags).Match(locale)
	if conf == language.No {
		return l.Text
	}
	return texts[idx]
}

func (l *Label) layout(c layout.Constraints, e *env) layout.Size {
	l.size = c.Constrain(surface.MeasureText(l.resolve(e.locale), e.textScale, e.locale))
	return l.size
}

func (l *Label) paint(s surface.Surface, e *env) {
	c := l.Color
	if c == nil {
		c = color.Black
	}
	s.PushClip(l.Bounds())
	s.DrawText(l.origin, l.resolve(e.locale), c, e.textScale, e.locale)
	s.PopClip()
}

// Padding insets its child on all sides.
type Padding struct {
	Node
	Inset float64
	Child Widget
}

// NewPadding creates a Padding.
func NewPadding(inset float64, child Widget) *Padding {
	return &Padding{Inset: inset, Child: child}
}

func (p *Padding) layout(c layout.Constraints, e *env) layout.Size {
	in := p.Inset
	p.kids = p.kids[:0]
	inner := layout.Size{}
	if p.Child != nil {
		inner = p.Child.layout(c.Deflate(2*in, 2*in), e)
		p.Child.node().offset = surface.Pt(in, in)
		p.kids = append(p.kids, p.Child)
	}
	p.size = c.Constrain(inner.Add(layout.Sz(2*in, 2*in)))
	return p.size
}

func (p *Padding) paint(s surface.Surface, e *env) {
	paintChildren(&p.Node, s, e)
}

// Flex lays children out along one axis.
type Flex struct {
	Node
	Axis       layout.Axis
	Gap        float64
	Background color.Color
	Items      []Widget
}

// NewColumn stacks children vertically.
func NewColumn(children ...Widget) *Flex {
	return &Flex{Axis: layout.Vertical, Items: children}
}

// NewRow places children side by side.
func NewRow(children ...Widget) *Flex {
	return &Flex{Axis: layout.Horizontal, Items: children}
}

func (f *Flex) layout(c layout.Constraints, e *env) layout.Size {
	child := layout.Constraints{MaxWidth: c.MaxWidth, MaxHeight: layout.Unbounded}
	if f.Axis == layout.Horizontal {
		child = layout.Constraints{MaxWidth: layout.Unbounded, MaxHeight: c.MaxHeight}
	}

	var main, cross float64
	f.kids = f.kids[:0]
	for i, it := range f.Items {
		if i > 0 {
			main += f.Gap
		}
		sz := it.layout(child, e)
		if f.Axis == layout.Horizontal {
			it.node().offset = surface.Pt(main, 0)
			main += sz.Width
			cross = math.Max(cross, sz.Height)
		} else {
			it.node().offset = surface.Pt(0, main)
			main += sz.Height
			cross = math.Max(cross, sz.Width)
		}
		f.kids = append(f.kids, it)
	}

	if f.Axis == layout.Horizontal {
		f.size = c.Constrain(layout.Sz(main, cross))
	} else {
		f.size = c.Constrain(layout.Sz(cross, main))
	}
	return f.size
}

func (f *Flex) paint(s surface.Surface, e *env) {
	fill(s, &f.Node, f.Background)
	s.PushClip(f.Bounds())
	paintChildren(&f.Node, s, e)
	s.PopClip()
}

// Boundary isolates its subtree for rasterization.
type Boundary struct {
	Node
	Child Widget
}

// NewBoundary wraps child in a paint boundary.
func NewBoundary(child Widget) *Boundary {
	return &Boundary{Child: child}
}

// IsPaintBoundary implements host.PaintBoundary.
func (b *Boundary) IsPaintBoundary() bool { return true }

func (b *Boundary) layout(c layout.Constraints, e *env) layout.Size {
	b.kids = b.kids[:0]
	if b.Child == nil {
		b.size = c.Min()
		return b.size
	}
	b.size = c.Constrain(b.Child.layout(c, e))
	b.Child.node().offset = surface.Point{}
	b.kids = append(b.kids, b.Child)
	return b.size
}

func (b *Boundary) paint(s surface.Surface, e *env) {
	paintChildren(&b.Node, s, e)
}

// Asset is an image-like widget whose content is only available after the
// session primes its assets. Until then it paints a gray placeholder.
type Asset struct {
	Node
	Name          string
	Width, Height float64
	Color         color.Color
}

// NewAsset creates an asset placeholder.
func NewAsset(name string, w, h float64, c color.Color) *Asset {
	return &Asset{Name: name, Width: w, Height: h, Color: c}
}

// placeholder is painted for assets that were not primed.
var placeholder = color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}

func (a *Asset) layout(c layout.Constraints, _ *env) layout.Size {
	a.size = c.Constrain(layout.Sz(a.Width, a.Height))
	return a.size
}

func (a *Asset) paint(s surface.Surface, e *env) {
	if e.loaded[a.Name] {
		fill(s, &a.Node, a.Color)
		return
	}
	fill(s, &a.Node, placeholder)
}

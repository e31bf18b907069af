// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retained

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/text/language"

	"github.com/gogpu/golden/host"
	"github.com/gogpu/golden/layout"
	"github.com/gogpu/golden/surface"
)

// DefaultSurfaceSize is the surface size of a new Tester.
var DefaultSurfaceSize = layout.Sz(800, 600)

// ErrForeignElement is returned for elements that do not belong to the
// tester's tree.
var ErrForeignElement = errors.New("retained: element is not part of this tree")

// Option configures a Tester.
type Option func(*Tester)

// WithBackground sets the color the surface is cleared with before
// painting. The default is white.
func WithBackground(c color.Color) Option {
	return func(t *Tester) {
		t.background = c
	}
}

// WithSurfaceSize sets the initial surface size.
func WithSurfaceSize(s layout.Size) Option {
	return func(t *Tester) {
		t.surfaceSize = s
	}
}

// WithLogger sets the logger. Nil discards output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tester) {
		t.log = l
	}
}

// Tester hosts one widget tree inside a resizable virtual surface.
// It implements host.Session, host.TextScaler and host.Localizer.
//
// The tree is wrapped in a root Boundary so that a paint boundary always
// exists.
type Tester struct {
	root        *Boundary
	surfaceSize layout.Size
	ratio       float64
	physical    layout.Size
	background  color.Color
	env         env
	log         *slog.Logger

	settles int
}

var (
	_ host.Session    = (*Tester)(nil)
	_ host.TextScaler = (*Tester)(nil)
	_ host.Localizer  = (*Tester)(nil)
)

// New creates a Tester for the tree rooted at w. The tree is not laid out
// until the first Settle.
func New(w Widget, opts ...Option) *Tester {
	t := &Tester{
		root:        Key("root", NewBoundary(w)),
		surfaceSize: DefaultSurfaceSize,
		ratio:       1,
		background:  color.White,
		env: env{
			textScale: 1,
			locale:    language.Und,
			loaded:    make(map[string]bool),
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = slog.New(slog.DiscardHandler)
	}
	t.physical = t.surfaceSize.Scale(t.ratio)
	return t
}

// Root implements host.Session.
func (t *Tester) Root() host.Element { return t.root }

// SurfaceSize implements host.Session.
func (t *Tester) SurfaceSize() layout.Size { return t.surfaceSize }

// SetSurfaceSize implements host.Session.
func (t *Tester) SetSurfaceSize(s layout.Size) {
	t.surfaceSize = s
}

// DevicePixelRatio returns the current pixel ratio.
func (t *Tester) DevicePixelRatio() float64 { return t.ratio }

// SetDevicePixelRatio implements host.Session.
func (t *Tester) SetDevicePixelRatio(r float64) {
	if r <= 0 {
		r = 1
	}
	t.ratio = r
}

// PhysicalSize returns the physical size override.
func (t *Tester) PhysicalSize() layout.Size { return t.physical }

// SetPhysicalSize implements host.Session.
func (t *Tester) SetPhysicalSize(s layout.Size) {
	t.physical = s
}

// TextScaleFactor returns the current text scale.
func (t *Tester) TextScaleFactor() float64 { return t.env.textScale }

// SetTextScaleFactor implements host.TextScaler.
func (t *Tester) SetTextScaleFactor(f float64) {
	if f <= 0 {
		f = 1
	}
	t.env.textScale = f
}

// Locale returns the current locale.
func (t *Tester) Locale() language.Tag { return t.env.locale }

// SetLocale implements host.Localizer.
func (t *Tester) SetLocale(tag language.Tag) {
	t.env.locale = tag
}

// Settles returns how many times Settle ran.
func (t *Tester) Settles() int { return t.settles }

// Settle implements host.Session. It lays the tree out with tight
// constraints equal to the surface size.
func (t *Tester) Settle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !t.surfaceSize.IsFinite() {
		return fmt.Errorf("retained: cannot lay out in an infinite surface %v", t.surfaceSize)
	}
	t.performLayout()
	t.settles++
	t.log.Debug("retained: settled", "surface", t.surfaceSize.String(), "root", t.root.size.String())
	return nil
}

func (t *Tester) performLayout() {
	t.root.layout(layout.Tight(t.surfaceSize), &t.env)
	place(t.root, surface.Point{})
}

// NaturalSize implements host.Session. The element is measured with
// unbounded constraints; the tree is then laid out again at the current
// surface size.
func (t *Tester) NaturalSize(e host.Element) layout.Size {
	w, ok := e.(Widget)
	if !ok {
		return e.Size()
	}
	natural := w.layout(layout.Unconstrained(), &t.env)
	t.performLayout()
	return natural
}

// Rasterize implements host.Session. It paints the whole tree at the
// current pixel ratio and returns the pixels under e as PNG.
func (t *Tester) Rasterize(ctx context.Context, e host.Element) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, ok := e.(Widget)
	if !ok || !t.contains(w) {
		return nil, ErrForeignElement
	}

	s := surface.NewImageSurface(t.surfaceSize, t.ratio)
	defer s.Close()

	s.Clear(t.background)
	t.root.paint(s, &t.env)
	img := s.SubSnapshot(w.node().Bounds())

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("retained: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (t *Tester) contains(w Widget) bool {
	found := false
	host.Walk(t.root, func(e host.Element) bool {
		if e == host.Element(w) {
			found = true
		}
		return !found
	})
	return found
}

// LoadAssets marks the named assets as available.
func (t *Tester) LoadAssets(names ...string) {
	for _, n := range names {
		t.env.loaded[n] = true
	}
}

// PrimeAssets loads every Asset in the tree of s. It is meant to be used
// as an asset-priming hook; sessions other than *Tester are left alone.
func PrimeAssets(ctx context.Context, s host.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, ok := s.(*Tester)
	if !ok {
		return nil
	}
	host.Walk(t.root, func(e host.Element) bool {
		if a, ok := e.(*Asset); ok {
			t.env.loaded[a.Name] = true
		}
		return true
	})
	return nil
}

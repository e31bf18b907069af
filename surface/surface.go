// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/text/language"

	"github.com/gogpu/golden/layout"
)

// Surface is a 2D raster target addressed in logical units.
type Surface interface {
	// Size returns the logical size.
	Size() layout.Size

	// PixelRatio returns physical pixels per logical unit.
	PixelRatio() float64

	// Clear fills the entire surface with c.
	Clear(c color.Color)

	// FillRect fills r with c, blending over existing content.
	FillRect(r Rect, c color.Color)

	// StrokeRect draws the outline of r with the given logical width.
	StrokeRect(r Rect, width float64, c color.Color)

	// DrawText draws a single line of text with its top-left corner at at.
	// scale multiplies FontSize; locale selects language specific shaping.
	DrawText(at Point, text string, c color.Color, scale float64, locale language.Tag)

	// PushClip restricts drawing to r intersected with the current clip.
	PushClip(r Rect)

	// PopClip restores the previous clip.
	PopClip()

	// Snapshot returns a copy of the surface contents.
	Snapshot() *image.RGBA

	// Close releases the surface. Close is idempotent.
	Close() error
}

// ResizableSurface is an optional interface for surfaces that support
// resizing.
type ResizableSurface interface {
	Surface

	// Resize changes the logical size and pixel ratio. Existing content is
	// discarded.
	Resize(size layout.Size, ratio float64) error
}

// Point is a logical position.
type Point struct {
	X, Y float64
}

// Pt creates a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is a logical rectangle.
type Rect struct {
	X, Y, W, H float64
}

// R creates a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Intersect returns the overlap of r and o; an empty overlap has zero size.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := math.Max(r.X, o.X), math.Max(r.Y, o.Y)
	x1, y1 := math.Min(r.X+r.W, o.X+o.W), math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Pixels converts r to a pixel rectangle at the given ratio. Edges are
// rounded to the nearest pixel.
func (r Rect) Pixels(ratio float64) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X*ratio)),
		int(math.Round(r.Y*ratio)),
		int(math.Round((r.X+r.W)*ratio)),
		int(math.Round((r.Y+r.H)*ratio)),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

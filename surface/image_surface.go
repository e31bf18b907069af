// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/text/language"

	"github.com/gogpu/golden/layout"
)

// ImageSurface is a CPU surface backed by an *image.RGBA.
//
// Example:
//
//	s := surface.NewImageSurface(layout.Sz(100, 40), 1)
//	defer s.Close()
//	s.Clear(color.White)
//	s.FillRect(surface.R(0, 0, 100, 20), color.Black)
//	img := s.Snapshot()
type ImageSurface struct {
	size  layout.Size
	ratio float64
	img   *image.RGBA

	// clips is the clip stack in pixels; the last entry is active.
	clips []image.Rectangle

	closed bool
}

// NewImageSurface creates a surface of the given logical size. The pixel
// buffer is size*ratio rounded to whole pixels and at least 1x1.
// A ratio <= 0 is treated as 1.
func NewImageSurface(size layout.Size, ratio float64) *ImageSurface {
	s := &ImageSurface{}
	s.reset(size, ratio)
	return s
}

func (s *ImageSurface) reset(size layout.Size, ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	s.size = size
	s.ratio = ratio
	s.img = image.NewRGBA(image.Rect(0, 0, pixels(size.Width, ratio), pixels(size.Height, ratio)))
	s.clips = s.clips[:0]
}

func pixels(v, ratio float64) int {
	n := int(math.Round(v * ratio))
	if n < 1 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 1
	}
	return n
}

// Size implements Surface.
func (s *ImageSurface) Size() layout.Size {
	return s.size
}

// PixelRatio implements Surface.
func (s *ImageSurface) PixelRatio() float64 {
	return s.ratio
}

// Bounds returns the pixel bounds.
func (s *ImageSurface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Resize implements ResizableSurface.
func (s *ImageSurface) Resize(size layout.Size, ratio float64) error {
	if s.closed {
		return ErrClosed
	}
	s.reset(size, ratio)
	return nil
}

func (s *ImageSurface) clip() image.Rectangle {
	if n := len(s.clips); n > 0 {
		return s.clips[n-1]
	}
	return s.img.Bounds()
}

// Clear implements Surface. Clear ignores the clip.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect implements Surface.
func (s *ImageSurface) FillRect(r Rect, c color.Color) {
	if s.closed || r.Empty() {
		return
	}
	pr := r.Pixels(s.ratio).Intersect(s.clip())
	if pr.Empty() {
		return
	}
	draw.Draw(s.img, pr, image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeRect implements Surface. The stroke lies inside r.
func (s *ImageSurface) StrokeRect(r Rect, width float64, c color.Color) {
	if width <= 0 || r.Empty() {
		return
	}
	w := math.Min(width, math.Min(r.W, r.H)/2)
	s.FillRect(R(r.X, r.Y, r.W, w), c)
	s.FillRect(R(r.X, r.Y+r.H-w, r.W, w), c)
	s.FillRect(R(r.X, r.Y+w, w, r.H-2*w), c)
	s.FillRect(R(r.X+r.W-w, r.Y+w, w, r.H-2*w), c)
}

// DrawText implements Surface.
//
// Text is shaped at FontSize and its outlines are rasterized directly at
// scale*ratio device pixels per logical pixel. Rasterized runs are cached
// per text, locale, color and scale.
func (s *ImageSurface) DrawText(at Point, text string, c color.Color, scale float64, locale language.Tag) {
	if s.closed || text == "" {
		return
	}
	if scale <= 0 {
		scale = 1
	}

	logical := MeasureText(text, scale, locale)
	dst := R(at.X, at.Y, logical.Width, logical.Height).Pixels(s.ratio)
	clip := dst.Intersect(s.clip())
	if clip.Empty() {
		return
	}
	glyphs := renderRun(text, locale, c, scale*s.ratio, dst.Dx(), dst.Dy())
	draw.Draw(s.img, clip, glyphs, clip.Min.Sub(dst.Min), draw.Over)
}

// PushClip implements Surface.
func (s *ImageSurface) PushClip(r Rect) {
	s.clips = append(s.clips, r.Pixels(s.ratio).Intersect(s.clip()))
}

// PopClip implements Surface. Popping an empty stack is a no-op.
func (s *ImageSurface) PopClip() {
	if n := len(s.clips); n > 0 {
		s.clips = s.clips[:n-1]
	}
}

// Snapshot implements Surface.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// SubSnapshot returns a copy of the pixels under the logical rectangle r.
// The result's bounds start at (0, 0).
func (s *ImageSurface) SubSnapshot(r Rect) *image.RGBA {
	pr := r.Pixels(s.ratio).Intersect(s.img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, pr.Dx(), pr.Dy()))
	draw.Draw(out, out.Bounds(), s.img, pr.Min, draw.Src)
	return out
}

// Close implements Surface.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

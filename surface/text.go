// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	tslang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/language"

	"github.com/gogpu/golden/internal/cache"
	"github.com/gogpu/golden/layout"
)

// FontSize is the em size, in logical pixels, of text drawn at scale 1.
const FontSize = 13

// typeface is the embedded Go Regular font. It is parsed twice: by
// go-text for shaping and by sfnt for outlines and line metrics. Glyph ids
// are shared since both read the same file.
type typeface struct {
	shape   *tsfont.Font
	outline *sfnt.Font

	// ascent and height are the line metrics at FontSize.
	ascent float64
	height float64
}

var loadTypeface = sync.OnceValues(func() (*typeface, error) {
	face, err := tsfont.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("surface: parse font for shaping: %w", err)
	}
	outline, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("surface: parse font outlines: %w", err)
	}
	var buf sfnt.Buffer
	m, err := outline.Metrics(&buf, toFixed(FontSize), font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("surface: font metrics: %w", err)
	}
	return &typeface{
		shape:   face.Font,
		outline: outline,
		ascent:  fromFixed(m.Ascent),
		height:  math.Ceil(fromFixed(m.Ascent + m.Descent)),
	}, nil
})

func mustTypeface() *typeface {
	tf, err := loadTypeface()
	if err != nil {
		// The font is compiled in; failing to parse it is a build defect.
		panic(err)
	}
	return tf
}

// HarfbuzzShaper keeps a buffer between calls and is not safe for
// concurrent use.
var shapers = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// glyph is one shaped glyph at FontSize; x is the pen position.
type glyph struct {
	id   sfnt.GlyphIndex
	x, y float64
}

// run is a shaped line of text at FontSize.
type run struct {
	glyphs  []glyph
	advance float64
}

type shapeKey struct {
	text   string
	locale string
}

var shaped = cache.New[shapeKey, *run](cache.DefaultCapacity)

// shape lays out text with go-text. The locale selects language specific
// shaping rules.
func shape(text string, locale language.Tag) *run {
	key := shapeKey{text: text, locale: locale.String()}
	return shaped.GetOrCreate(key, func() *run {
		tf := mustTypeface()
		runes := []rune(text)

		hb := shapers.Get().(*shaping.HarfbuzzShaper)
		out := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: di.DirectionLTR,
			Face:      tsfont.NewFace(tf.shape),
			Size:      toFixed(FontSize),
			Script:    scriptOf(runes),
			Language:  tslang.NewLanguage(key.locale),
		})
		shapers.Put(hb)

		r := &run{glyphs: make([]glyph, 0, len(out.Glyphs))}
		var pen float64
		for _, g := range out.Glyphs {
			r.glyphs = append(r.glyphs, glyph{
				id: sfnt.GlyphIndex(g.GlyphID),
				x:  pen + fromFixed(g.XOffset),
				y:  -fromFixed(g.YOffset),
			})
			pen += fromFixed(g.Advance)
		}
		r.advance = pen
		return r
	})
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(runes []rune) tslang.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return tslang.LookupScript(r)
	}
	return tslang.Latin
}

// MeasureText returns the logical size of text drawn at scale in locale.
// The width is the shaped advance rounded up to a whole logical pixel at
// scale 1, so sizes scale exactly.
func MeasureText(text string, scale float64, locale language.Tag) layout.Size {
	if scale <= 0 {
		scale = 1
	}
	tf := mustTypeface()
	w := 0.0
	if text != "" {
		w = math.Ceil(shape(text, locale).advance)
	}
	return layout.Size{Width: w * scale, Height: tf.height * scale}
}

// runKey identifies a rasterized text run.
type runKey struct {
	text   string
	locale string
	color  color.RGBA
	scale  float64
	width  int
	height int
}

// runs holds rasterized text. Cached images are never written after
// creation.
var runs = cache.New[runKey, *image.RGBA](cache.DefaultCapacity)

// renderRun rasterizes text into a w x h image, with glyph outlines scaled
// by px device pixels per logical pixel.
func renderRun(text string, locale language.Tag, c color.Color, px float64, w, h int) *image.RGBA {
	key := runKey{
		text:   text,
		locale: locale.String(),
		color:  color.RGBAModel.Convert(c).(color.RGBA),
		scale:  px,
		width:  w,
		height: h,
	}
	return runs.GetOrCreate(key, func() *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		tf := mustTypeface()
		r := shape(text, locale)

		var buf sfnt.Buffer
		ras := vector.NewRasterizer(w, h)
		baseline := tf.ascent * px
		inked := false
		for _, g := range r.glyphs {
			segs, err := tf.outline.LoadGlyph(&buf, g.id, toFixed(FontSize*px), nil)
			if err != nil || len(segs) == 0 {
				continue
			}
			inked = true
			appendOutline(ras, segs, float32(g.x*px), float32(baseline+g.y*px))
		}
		if inked {
			ras.Draw(img, img.Bounds(), image.NewUniform(key.color), image.Point{})
		}
		return img
	})
}

// appendOutline adds glyph segments, which are relative to the pen at
// (ox, oy) with y pointing down, to ras.
func appendOutline(ras *vector.Rasterizer, segs []sfnt.Segment, ox, oy float32) {
	pt := func(p fixed.Point26_6) (float32, float32) {
		return ox + float32(p.X)/64, oy + float32(p.Y)/64
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				ras.ClosePath()
			}
			ras.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			ras.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			ras.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			ras.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		ras.ClosePath()
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compare

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
)

// Result is the verdict of a Differ.
type Result struct {
	// Match reports whether the candidate is accepted.
	Match bool

	// Reason explains a mismatch that is not a pixel count, such as
	// differing dimensions.
	Reason string

	DiffPixels  int
	DiffPercent float64

	// Diff visualizes the mismatch. It is nil when no per-pixel comparison
	// was possible.
	Diff image.Image
}

// Differ compares candidate bytes with reference bytes.
type Differ interface {
	Diff(candidate, reference []byte) (Result, error)
}

// DifferFunc adapts a function to Differ.
type DifferFunc func(candidate, reference []byte) (Result, error)

// Diff calls f.
func (f DifferFunc) Diff(candidate, reference []byte) (Result, error) {
	return f(candidate, reference)
}

// mismatchColor marks differing pixels in diff images.
var mismatchColor = color.NRGBA{R: 255, A: 255}

// PixelDiffer decodes both images and compares them pixel by pixel.
//
// The zero value requires an exact match.
type PixelDiffer struct {
	// Threshold is the percentage of differing pixels still accepted.
	Threshold float64

	// ChannelTolerance is the largest per-channel difference (0-255) for
	// which two pixels are still considered equal.
	ChannelTolerance uint8
}

// Diff implements Differ.
func (d PixelDiffer) Diff(candidate, reference []byte) (Result, error) {
	if bytes.Equal(candidate, reference) {
		return Result{Match: true}, nil
	}

	cand, err := decode("candidate", candidate)
	if err != nil {
		return Result{}, err
	}
	ref, err := decode("reference", reference)
	if err != nil {
		return Result{}, err
	}

	cb, rb := cand.Bounds(), ref.Bounds()
	if cb.Dx() != rb.Dx() || cb.Dy() != rb.Dy() {
		return Result{
			Reason: fmt.Sprintf("size %dx%d differs from reference %dx%d", cb.Dx(), cb.Dy(), rb.Dx(), rb.Dy()),
		}, nil
	}

	count, diff := d.pixels(imaging.Clone(cand), imaging.Clone(ref))
	total := cb.Dx() * cb.Dy()
	pct := 0.0
	if total > 0 {
		pct = float64(count) / float64(total) * 100
	}

	res := Result{
		Match:       pct <= d.Threshold,
		DiffPixels:  count,
		DiffPercent: pct,
	}
	if count > 0 {
		res.Diff = diff
	}
	return res, nil
}

// pixels counts differing pixels and renders them in red over the
// grayscale candidate.
func (d PixelDiffer) pixels(cand, ref *image.NRGBA) (int, *image.NRGBA) {
	diff := imaging.Grayscale(cand)
	w, h := cand.Bounds().Dx(), cand.Bounds().Dy()
	tol := int(d.ChannelTolerance)

	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*cand.Stride + x*4
			j := y*ref.Stride + x*4
			if channelsDiffer(cand.Pix[i:i+4], ref.Pix[j:j+4], tol) {
				count++
				diff.SetNRGBA(x, y, mismatchColor)
			}
		}
	}
	return count, diff
}

func channelsDiffer(a, b []uint8, tol int) bool {
	for k := 0; k < 4; k++ {
		delta := int(a[k]) - int(b[k])
		if delta < 0 {
			delta = -delta
		}
		if delta > tol {
			return true
		}
	}
	return false
}

func decode(what string, data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("compare: %s is not an image (detected %q)", what, kind.Extension)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compare: decode %s: %w", what, err)
	}
	return img, nil
}

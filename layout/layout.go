// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layout holds the small geometry vocabulary shared by the golden
// helpers and the host sessions they drive: logical sizes, box constraints
// and scroll axes.
//
// Sizes are logical (device-independent) units. A bound of [Unbounded]
// means the axis has no maximum.
package layout

import (
	"fmt"
	"math"
)

// Unbounded is the maximum of an axis without an upper bound.
var Unbounded = math.Inf(1)

// Axis identifies the direction a scrollable region scrolls in.
type Axis uint8

const (
	// Vertical scrolls along the y axis and contributes to height.
	Vertical Axis = iota

	// Horizontal scrolls along the x axis and contributes to width.
	Horizontal
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", a)
	}
}

// Size is a width and height in logical units.
type Size struct {
	Width, Height float64
}

// Sz creates a Size.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// IsFinite reports whether both dimensions are finite numbers.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0) &&
		!math.IsNaN(s.Width) && !math.IsNaN(s.Height)
}

// Scale returns the size multiplied by f on both axes.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// Add returns the component-wise sum of s and o.
func (s Size) Add(o Size) Size {
	return Size{Width: s.Width + o.Width, Height: s.Height + o.Height}
}

// Along returns the extent of s on the given axis.
func (s Size) Along(a Axis) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// ShortestSide returns the smaller of the two dimensions.
func (s Size) ShortestSide() float64 {
	return math.Min(s.Width, s.Height)
}

// LongestSide returns the larger of the two dimensions.
func (s Size) LongestSide() float64 {
	return math.Max(s.Width, s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Constraints are box constraints: an inclusive [min, max] range per axis.
//
// The zero value only admits a 0x0 box. Use [Tight], [Loose] or
// [Unconstrained] to build common shapes.
type Constraints struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// Tight returns constraints that admit exactly s.
func Tight(s Size) Constraints {
	return Constraints{
		MinWidth: s.Width, MaxWidth: s.Width,
		MinHeight: s.Height, MaxHeight: s.Height,
	}
}

// Loose returns constraints from 0 up to s on each axis.
func Loose(s Size) Constraints {
	return Constraints{MaxWidth: s.Width, MaxHeight: s.Height}
}

// Unconstrained returns constraints with no minimum and no maximum.
func Unconstrained() Constraints {
	return Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// Min returns the smallest admitted size.
func (c Constraints) Min() Size {
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Max returns the largest admitted size. Either axis may be unbounded.
func (c Constraints) Max() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// IsTight reports whether exactly one size satisfies c.
func (c Constraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// IsSatisfiable reports whether min <= max on both axes and no minimum is
// negative or infinite.
func (c Constraints) IsSatisfiable() bool {
	if c.MinWidth < 0 || c.MinHeight < 0 {
		return false
	}
	if math.IsInf(c.MinWidth, 0) || math.IsInf(c.MinHeight, 0) {
		return false
	}
	if math.IsNaN(c.MinWidth) || math.IsNaN(c.MaxWidth) ||
		math.IsNaN(c.MinHeight) || math.IsNaN(c.MaxHeight) {
		return false
	}
	return c.MinWidth <= c.MaxWidth && c.MinHeight <= c.MaxHeight
}

// HasBoundedWidth reports whether the width maximum is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether the height maximum is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// IsBounded reports whether the maximum on axis a is finite.
func (c Constraints) IsBounded(a Axis) bool {
	if a == Horizontal {
		return c.HasBoundedWidth()
	}
	return c.HasBoundedHeight()
}

// Constrain clamps each axis of s into [min, max] independently.
func (c Constraints) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

// Contains reports whether s satisfies c.
func (c Constraints) Contains(s Size) bool {
	return s.Width >= c.MinWidth && s.Width <= c.MaxWidth &&
		s.Height >= c.MinHeight && s.Height <= c.MaxHeight
}

// WithWidth returns a copy whose width range is [min, max].
func (c Constraints) WithWidth(minW, maxW float64) Constraints {
	c.MinWidth, c.MaxWidth = minW, maxW
	return c
}

// WithHeight returns a copy whose height range is [min, max].
func (c Constraints) WithHeight(minH, maxH float64) Constraints {
	c.MinHeight, c.MaxHeight = minH, maxH
	return c
}

// Loosen returns a copy with both minimums set to 0.
func (c Constraints) Loosen() Constraints {
	c.MinWidth, c.MinHeight = 0, 0
	return c
}

// Deflate shrinks both bounds by the given insets, never below zero.
func (c Constraints) Deflate(horizontal, vertical float64) Constraints {
	return Constraints{
		MinWidth:  math.Max(0, c.MinWidth-horizontal),
		MaxWidth:  math.Max(0, c.MaxWidth-horizontal),
		MinHeight: math.Max(0, c.MinHeight-vertical),
		MaxHeight: math.Max(0, c.MaxHeight-vertical),
	}
}

func (c Constraints) String() string {
	return fmt.Sprintf("w[%g..%g] h[%g..%g]", c.MinWidth, c.MaxWidth, c.MinHeight, c.MaxHeight)
}

// clamp keeps the lower bound when lo > hi, matching how an unsatisfiable
// range is resolved by layout.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

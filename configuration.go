// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import (
	"fmt"
	"math"

	"golang.org/x/text/language"

	"github.com/gogpu/golden/layout"
)

// Orientation of a device.
type Orientation uint8

const (
	// OrientationUnset is the orientation of plain configurations.
	OrientationUnset Orientation = iota

	// Portrait puts the longest side vertically.
	Portrait

	// Landscape puts the longest side horizontally.
	Landscape
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case OrientationUnset:
		return "unset"
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return fmt.Sprintf("Orientation(%d)", o)
	}
}

// Kind discriminates plain configurations from devices.
type Kind uint8

const (
	// KindSurface is a plain configuration: any satisfiable constraints.
	KindSurface Kind = iota

	// KindDevice is a device: tight constraints, orientation can be
	// changed.
	KindDevice
)

func (k Kind) String() string {
	if k == KindDevice {
		return "device"
	}
	return "surface"
}

// Configuration describes one variant a golden image is rendered in.
//
// Configurations are values; every method returns a modified copy.
type Configuration struct {
	// Name identifies the variant in reference file names.
	Name string

	// Constraints bound the surface size. Sizing picks a concrete size
	// within them.
	Constraints layout.Constraints

	// PixelRatio is physical pixels per logical unit.
	PixelRatio float64

	// TextScale multiplies text sizes.
	TextScale float64

	// Locale is applied when the session supports locales.
	// language.Und leaves the session locale alone.
	Locale language.Tag

	// Orientation is informational for plain configurations and kept in
	// sync with the constraints for devices.
	Orientation Orientation

	// Kind selects device semantics.
	Kind Kind
}

// NewConfiguration returns a plain configuration with ratio and text scale
// of 1.
func NewConfiguration(name string, c layout.Constraints) Configuration {
	return Configuration{
		Name:        name,
		Constraints: c,
		PixelRatio:  1,
		TextScale:   1,
		Locale:      language.Und,
	}
}

// NewDevice returns a device of the given logical size. The orientation is
// derived from the size; square devices are portrait.
func NewDevice(name string, size layout.Size, pixelRatio float64) Configuration {
	o := Portrait
	if size.Width > size.Height {
		o = Landscape
	}
	return Configuration{
		Name:        name,
		Constraints: layout.Tight(size),
		PixelRatio:  pixelRatio,
		TextScale:   1,
		Locale:      language.Und,
		Orientation: o,
		Kind:        KindDevice,
	}
}

// IsDevice reports whether c has device semantics.
func (c Configuration) IsDevice() bool {
	return c.Kind == KindDevice
}

// Validate checks the invariants of c.
func (c Configuration) Validate() error {
	const op = "validate configuration"
	switch {
	case c.Name == "":
		return configErrf(op, ErrInvalidConfiguration, "empty name")
	case !c.Constraints.IsSatisfiable():
		return configErrf(op, ErrInvalidConfiguration, "%q has unsatisfiable constraints %v", c.Name, c.Constraints)
	case !(c.PixelRatio > 0) || math.IsInf(c.PixelRatio, 0):
		return configErrf(op, ErrInvalidConfiguration, "%q has pixel ratio %v", c.Name, c.PixelRatio)
	case !(c.TextScale > 0) || math.IsInf(c.TextScale, 0):
		return configErrf(op, ErrInvalidConfiguration, "%q has text scale %v", c.Name, c.TextScale)
	case c.IsDevice() && !c.Constraints.IsTight():
		return configErrf(op, ErrNotTight, "%q has constraints %v", c.Name, c.Constraints)
	}
	return nil
}

// WithName returns a copy with the given name.
func (c Configuration) WithName(name string) Configuration {
	c.Name = name
	return c
}

// WithConstraints returns a copy with the given constraints.
func (c Configuration) WithConstraints(cs layout.Constraints) Configuration {
	c.Constraints = cs
	return c
}

// WithPixelRatio returns a copy with the given pixel ratio.
func (c Configuration) WithPixelRatio(r float64) Configuration {
	c.PixelRatio = r
	return c
}

// WithTextScale returns a copy with the given text scale.
func (c Configuration) WithTextScale(f float64) Configuration {
	c.TextScale = f
	return c
}

// WithLocale returns a copy with the given locale.
func (c Configuration) WithLocale(tag language.Tag) Configuration {
	c.Locale = tag
	return c
}

// WithOrientation returns a copy tagged with o. The constraints are not
// changed; use Portrait or Landscape on devices to reorder the sides.
func (c Configuration) WithOrientation(o Orientation) Configuration {
	c.Orientation = o
	return c
}

// WithKind returns a copy with the given kind. Switching to KindDevice does
// not check tightness; Validate does.
func (c Configuration) WithKind(k Kind) Configuration {
	c.Kind = k
	return c
}

// HeightBetween returns a copy whose height may range over [minH, maxH]
// while the width is unchanged. The result is a plain configuration unless
// the constraints stay tight.
func (c Configuration) HeightBetween(minH, maxH float64) Configuration {
	c.Constraints = c.Constraints.WithHeight(minH, maxH)
	return c.demote()
}

// WidthBetween returns a copy whose width may range over [minW, maxW]
// while the height is unchanged.
func (c Configuration) WidthBetween(minW, maxW float64) Configuration {
	c.Constraints = c.Constraints.WithWidth(minW, maxW)
	return c.demote()
}

// LooseHeight lets the height range over [0, unbounded).
func (c Configuration) LooseHeight() Configuration {
	return c.HeightBetween(0, layout.Unbounded)
}

// LooseWidth lets the width range over [0, unbounded).
func (c Configuration) LooseWidth() Configuration {
	return c.WidthBetween(0, layout.Unbounded)
}

// demote drops device semantics once the constraints are no longer tight.
func (c Configuration) demote() Configuration {
	if c.IsDevice() && !c.Constraints.IsTight() {
		c.Kind = KindSurface
	}
	return c
}

// Portrait returns the device rotated so that its shortest side is the
// width.
func (c Configuration) Portrait() (Configuration, error) {
	return c.rotate(Portrait)
}

// Landscape returns the device rotated so that its longest side is the
// width.
func (c Configuration) Landscape() (Configuration, error) {
	return c.rotate(Landscape)
}

func (c Configuration) rotate(o Orientation) (Configuration, error) {
	op := "orient " + o.String()
	if !c.IsDevice() {
		return Configuration{}, configErrf(op, ErrNotDevice, "%q", c.Name)
	}
	if !c.Constraints.IsTight() {
		return Configuration{}, configErrf(op, ErrNotTight, "%q has constraints %v", c.Name, c.Constraints)
	}

	size := c.Constraints.Max()
	short, long := size.ShortestSide(), size.LongestSide()
	if o == Portrait {
		c.Constraints = layout.Tight(layout.Sz(short, long))
	} else {
		c.Constraints = layout.Tight(layout.Sz(long, short))
	}
	c.Orientation = o
	return c, nil
}

func (c Configuration) String() string {
	return fmt.Sprintf("%s(%s %v @%gx text %gx)", c.Name, c.Kind, c.Constraints, c.PixelRatio, c.TextScale)
}

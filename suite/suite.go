// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package suite loads golden configurations from YAML files.
//
// A suite file lists the configurations a test package renders in and the
// settings its golden.Config is built with:
//
//	base_dir: testdata/goldens
//	differ:
//	  threshold: 0.1
//	  channel_tolerance: 2
//	defaults: [phone, tablet]
//	configurations:
//	  - device: phone
//	  - name: tablet
//	    device: tablet_portrait
//	    orientation: landscape
//	  - name: phone_de_large
//	    device: phone
//	    locale: de
//	    text_scale: 1.5
//	    loose: height
//	  - name: banner
//	    min_width: 320
//	    max_width: 320
//	    max_height: .inf
package suite

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/golden"
	"github.com/gogpu/golden/compare"
	"github.com/gogpu/golden/layout"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("suite: invalid")

// Suite is the content of a suite file.
type Suite struct {
	BaseDir    string              `yaml:"base_dir"`
	FailureDir string              `yaml:"failure_dir"`
	Differ     *Differ             `yaml:"differ"`
	Defaults   []string            `yaml:"defaults"`
	Specs      []ConfigurationSpec `yaml:"configurations"`

	resolved []golden.Configuration
}

// Differ tunes compare.PixelDiffer.
type Differ struct {
	Threshold        float64 `yaml:"threshold"`
	ChannelTolerance uint8   `yaml:"channel_tolerance"`
}

// ConfigurationSpec describes one configuration.
//
// With Device set, the preset of that name is the starting point. Otherwise
// Width and Height make a device, and the Min*/Max* bounds a plain
// configuration; missing maximums are unbounded.
type ConfigurationSpec struct {
	Name        string   `yaml:"name"`
	Device      string   `yaml:"device"`
	Width       float64  `yaml:"width"`
	Height      float64  `yaml:"height"`
	MinWidth    float64  `yaml:"min_width"`
	MaxWidth    *float64 `yaml:"max_width"`
	MinHeight   float64  `yaml:"min_height"`
	MaxHeight   *float64 `yaml:"max_height"`
	PixelRatio  float64  `yaml:"pixel_ratio"`
	TextScale   float64  `yaml:"text_scale"`
	Locale      string   `yaml:"locale"`
	Orientation string   `yaml:"orientation"` // portrait | landscape
	Loose       string   `yaml:"loose"`       // width | height
}

// Presets are the devices a configuration can start from, by name.
func Presets() map[string]golden.Configuration {
	out := make(map[string]golden.Configuration)
	for _, d := range []golden.Configuration{golden.Phone, golden.IPhone11, golden.TabletPortrait, golden.TabletLandscape} {
		out[d.Name] = d
	}
	return out
}

// LoadFile reads and validates a suite file.
func LoadFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a suite. Unknown keys are rejected.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("suite: decode: %w", err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Suite) applyDefaults() {
	if s.BaseDir == "" {
		s.BaseDir = golden.DefaultBaseDir
	}
	for i := range s.Specs {
		c := &s.Specs[i]
		if c.Name == "" {
			c.Name = c.Device
		}
		if c.PixelRatio == 0 && c.Device == "" {
			c.PixelRatio = 1
		}
		if c.TextScale == 0 {
			c.TextScale = 1
		}
		c.Orientation = strings.ToLower(c.Orientation)
		c.Loose = strings.ToLower(c.Loose)
	}
}

// Validate resolves every configuration and checks names and defaults.
func (s *Suite) Validate() error {
	if s.Differ != nil && (s.Differ.Threshold < 0 || s.Differ.Threshold > 100) {
		return fmt.Errorf("%w: differ threshold %g outside [0, 100]", ErrInvalid, s.Differ.Threshold)
	}

	presets := Presets()
	seen := make(map[string]bool)
	resolved := make([]golden.Configuration, 0, len(s.Specs))
	for i, spec := range s.Specs {
		cfg, err := spec.resolve(presets)
		if err != nil {
			return fmt.Errorf("configuration %d: %w", i, err)
		}
		if seen[cfg.Name] {
			return fmt.Errorf("%w: duplicate configuration %q", ErrInvalid, cfg.Name)
		}
		seen[cfg.Name] = true
		resolved = append(resolved, cfg)
	}
	for _, name := range s.Defaults {
		if !seen[name] {
			return fmt.Errorf("%w: default %q is not a configuration", ErrInvalid, name)
		}
	}
	s.resolved = resolved
	return nil
}

func (c ConfigurationSpec) resolve(presets map[string]golden.Configuration) (golden.Configuration, error) {
	if c.Name == "" {
		return golden.Configuration{}, fmt.Errorf("%w: configuration without name or device", ErrInvalid)
	}

	var cfg golden.Configuration
	switch {
	case c.Device != "":
		preset, ok := presets[c.Device]
		if !ok {
			return cfg, fmt.Errorf("%w: %q: unknown device %q", ErrInvalid, c.Name, c.Device)
		}
		cfg = preset.WithName(c.Name)
		if c.PixelRatio != 0 {
			cfg = cfg.WithPixelRatio(c.PixelRatio)
		}
	case c.Width > 0 || c.Height > 0:
		cfg = golden.NewDevice(c.Name, layout.Sz(c.Width, c.Height), c.PixelRatio)
	default:
		cfg = golden.NewConfiguration(c.Name, layout.Constraints{
			MinWidth:  c.MinWidth,
			MaxWidth:  orUnbounded(c.MaxWidth),
			MinHeight: c.MinHeight,
			MaxHeight: orUnbounded(c.MaxHeight),
		}).WithPixelRatio(c.PixelRatio)
	}
	cfg = cfg.WithTextScale(c.TextScale)

	if c.Locale != "" {
		tag, err := language.Parse(c.Locale)
		if err != nil {
			return cfg, fmt.Errorf("%w: %q: locale: %v", ErrInvalid, c.Name, err)
		}
		cfg = cfg.WithLocale(tag)
	}

	var err error
	switch c.Orientation {
	case "":
	case "portrait":
		cfg, err = cfg.Portrait()
	case "landscape":
		cfg, err = cfg.Landscape()
	default:
		return cfg, fmt.Errorf("%w: %q: orientation %q", ErrInvalid, c.Name, c.Orientation)
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: %q: %w", ErrInvalid, c.Name, err)
	}

	switch c.Loose {
	case "":
	case "height":
		cfg = cfg.LooseHeight()
	case "width":
		cfg = cfg.LooseWidth()
	default:
		return cfg, fmt.Errorf("%w: %q: loose %q", ErrInvalid, c.Name, c.Loose)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg, nil
}

func orUnbounded(v *float64) float64 {
	if v == nil {
		return layout.Unbounded
	}
	return *v
}

// Configurations returns the resolved configurations in file order.
func (s *Suite) Configurations() []golden.Configuration {
	return append([]golden.Configuration(nil), s.resolved...)
}

// Lookup returns the configuration called name.
func (s *Suite) Lookup(name string) (golden.Configuration, bool) {
	for _, c := range s.resolved {
		if c.Name == name {
			return c, true
		}
	}
	return golden.Configuration{}, false
}

// Options returns the golden.Config options the suite describes. Extra
// options are appended and take precedence.
func (s *Suite) Options(extra ...golden.Option) []golden.Option {
	opts := []golden.Option{golden.WithBaseDir(s.BaseDir)}
	if s.FailureDir != "" {
		opts = append(opts, golden.WithFailureDir(s.FailureDir))
	}
	if s.Differ != nil {
		opts = append(opts, golden.WithDiffer(compare.PixelDiffer{
			Threshold:        s.Differ.Threshold,
			ChannelTolerance: s.Differ.ChannelTolerance,
		}))
	}
	if len(s.Defaults) > 0 {
		defaults := make([]golden.Configuration, 0, len(s.Defaults))
		for _, name := range s.Defaults {
			c, _ := s.Lookup(name)
			defaults = append(defaults, c)
		}
		opts = append(opts, golden.WithDefaultConfigurations(defaults...))
	}
	return append(opts, extra...)
}

// NewConfig builds a golden.Config from the suite.
func (s *Suite) NewConfig(extra ...golden.Option) (*golden.Config, error) {
	return golden.NewConfig(s.Options(extra...)...)
}

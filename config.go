// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import (
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/gosimple/slug"

	"github.com/gogpu/golden/compare"
)

// Config holds suite-wide settings. It is built once with NewConfig and
// passed to every Matcher; it is safe for concurrent use.
//
// A nil *Config is accepted by every method and reports ErrNotConfigured.
type Config struct {
	baseDir  string
	fileName FileNameFactory
	primer   AssetPrimer
	mode     Mode
	skip     func() bool
	defaults []Configuration
	log      *slog.Logger
	store    compare.Store
	copts    []compare.Option

	mu     sync.Mutex
	issued map[string]nameKey
}

type nameKey struct {
	name, cfg string
}

// NewConfig builds a Config.
func NewConfig(opts ...Option) (*Config, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	const op = "new config"
	if o.store == nil && o.baseDir == "" {
		return nil, configErrf(op, ErrInvalidConfiguration, "empty base directory")
	}
	if o.fileName == nil {
		return nil, configErrf(op, ErrInvalidConfiguration, "nil file name factory")
	}
	if o.defaults == nil {
		o.defaults = DefaultDevices()
	}
	for _, d := range o.defaults {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	store := o.store
	if store == nil {
		store = compare.NewFileStore(o.baseDir)
	}
	var copts []compare.Option
	if o.differ != nil {
		copts = append(copts, compare.WithDiffer(o.differ))
	}
	if o.failureDir != "" {
		copts = append(copts, compare.WithFailureDir(o.failureDir))
	}

	return &Config{
		baseDir:  o.baseDir,
		fileName: o.fileName,
		primer:   o.primer,
		mode:     o.mode,
		skip:     o.skip,
		defaults: o.defaults,
		log:      o.logger,
		store:    store,
		copts:    copts,
		issued:   make(map[string]nameKey),
	}, nil
}

// MustConfig is like NewConfig but panics on error. Intended for TestMain
// and package-level variables.
func MustConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) check(op string) error {
	if c == nil {
		return configErr(op, ErrNotConfigured)
	}
	return nil
}

// BaseDir returns the reference directory.
func (c *Config) BaseDir() string {
	if c == nil {
		return ""
	}
	return c.baseDir
}

// Mode returns the configured mode. A nil Config verifies.
func (c *Config) Mode() Mode {
	if c == nil {
		return ModeVerify
	}
	return c.mode
}

// logger returns the WithLogger logger, or the package logger at the time
// of the call.
func (c *Config) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// Comparator returns a comparator over the configured store.
func (c *Config) Comparator() (*compare.Comparator, error) {
	if err := c.check("comparator"); err != nil {
		return nil, err
	}
	opts := append([]compare.Option{compare.WithLogger(c.logger())}, c.copts...)
	return compare.New(c.store, opts...), nil
}

// DefaultConfigurations returns a copy of the configurations MultiScreen
// falls back to.
func (c *Config) DefaultConfigurations() ([]Configuration, error) {
	if err := c.check("default configurations"); err != nil {
		return nil, err
	}
	return append([]Configuration(nil), c.defaults...), nil
}

// Skip reports whether assertions should be skipped.
func (c *Config) Skip() bool {
	return c != nil && c.skip != nil && c.skip()
}

// FileName returns the reference path for (name, cfg).
//
// Two distinct (name, cfg.Name) pairs that map to the same path are
// reported as ErrNameCollision; asking again for the same pair is fine.
func (c *Config) FileName(name string, cfg Configuration) (string, error) {
	const op = "file name"
	if err := c.check(op); err != nil {
		return "", err
	}
	id := c.fileName(name, cfg)
	if id == "" {
		return "", configErrf(op, ErrInvalidConfiguration, "empty file name for %q [%s]", name, cfg.Name)
	}

	key := nameKey{name: name, cfg: cfg.Name}
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.issued[id]; ok && prev != key {
		return "", configErrf(op, ErrNameCollision, "%q [%s] and %q [%s] both map to %s",
			prev.name, prev.cfg, name, cfg.Name, id)
	}
	c.issued[id] = key
	return id, nil
}

// DefaultFileName returns "<name>.<configuration>.png" with every path
// segment of name and the configuration name slugified. Slashes in name
// create subdirectories.
func DefaultFileName(name string, cfg Configuration) string {
	segments := strings.Split(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	out := segments[:0]
	for _, segment := range segments {
		if segment = slug.Make(segment); segment != "" {
			out = append(out, segment)
		}
	}
	if len(out) == 0 {
		return ""
	}
	variant := slug.Make(cfg.Name)
	if variant == "" {
		return ""
	}
	return path.Join(out...) + "." + variant + ".png"
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/gogpu/golden/compare"
	"github.com/gogpu/golden/host"
	"github.com/gogpu/golden/sizing"
)

// Matcher runs requests against a session. It holds no per-run state; a
// Matcher may be reused, but a session must not be shared between
// concurrent Match calls.
type Matcher struct {
	cfg        *Config
	engine     *sizing.Engine
	comparator *compare.Comparator
	log        *slog.Logger
}

// NewMatcher returns a Matcher for cfg.
func NewMatcher(cfg *Config) (*Matcher, error) {
	comparator, err := cfg.Comparator()
	if err != nil {
		return nil, err
	}
	return &Matcher{
		cfg:        cfg,
		engine:     &sizing.Engine{Logger: cfg.logger()},
		comparator: comparator,
		log:        cfg.logger(),
	}, nil
}

// Match runs reqs in order and returns the first failure. Requests after a
// failing one are not attempted.
//
// Failures are returned as *MatchError wrapping a *ConfigurationError, a
// *compare.MissingReferenceError, a *compare.MismatchError or an I/O error.
func (m *Matcher) Match(ctx context.Context, s host.Session, reqs ...Request) error {
	if s == nil {
		return configErr("match", ErrNoSession)
	}
	for i, r := range reqs {
		if err := m.matchOne(ctx, s, r); err != nil {
			m.log.Debug("golden: match failed",
				"name", r.Name,
				"configuration", r.Configuration.Name,
				"index", i,
				"skipped", len(reqs)-i-1)
			return &MatchError{Name: r.Name, Configuration: r.Configuration.Name, Err: err}
		}
	}
	return nil
}

func (m *Matcher) matchOne(ctx context.Context, s host.Session, r Request) error {
	if r.Name == "" {
		return configErrf("match", ErrInvalidConfiguration, "empty name")
	}
	cfg := r.Configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Text scale and locale change layout, so they go in before sizing.
	if ts, ok := s.(host.TextScaler); ok {
		ts.SetTextScaleFactor(cfg.TextScale)
	}
	if lc, ok := s.(host.Localizer); ok && cfg.Locale != language.Und {
		lc.SetLocale(cfg.Locale)
	}

	sz := r.sizing()
	size, err := sz.resize(ctx, m.engine, s, cfg.Constraints)
	switch {
	case errors.Is(err, sizing.ErrInvalidConstraints), errors.Is(err, sizing.ErrUnboundedExtent):
		return configErr("size "+sz.String(), err)
	case err != nil:
		return err
	}

	s.SetDevicePixelRatio(cfg.PixelRatio)
	s.SetPhysicalSize(size.Scale(cfg.PixelRatio))

	if m.cfg.primer != nil {
		if err := m.cfg.primer(ctx, s); err != nil {
			return fmt.Errorf("golden: prime assets: %w", err)
		}
	}
	if err := s.Settle(ctx); err != nil {
		return fmt.Errorf("golden: settle: %w", err)
	}

	id, err := m.cfg.FileName(r.Name, cfg)
	if err != nil {
		return err
	}

	el, err := host.First(s.Root(), r.finder())
	if err != nil {
		return fmt.Errorf("golden: rasterize target: %w", err)
	}
	candidate, err := s.Rasterize(ctx, el)
	if err != nil {
		return fmt.Errorf("golden: rasterize: %w", err)
	}

	m.log.Debug("golden: matching",
		"name", r.Name,
		"configuration", cfg.Name,
		"sizing", sz.String(),
		"size", size.String(),
		"id", id,
		"mode", m.cfg.mode.String())

	if m.cfg.mode == ModeRecord {
		if err := m.comparator.Record(ctx, id, candidate); err != nil {
			return err
		}
		m.log.Info("golden: recorded", "id", id, "location", m.comparator.Store().Location(id))
		return nil
	}
	return m.comparator.Compare(ctx, id, candidate)
}

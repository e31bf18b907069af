// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import (
	"testing"

	"github.com/gogpu/golden/host"
)

// Assert runs reqs against s and fails t on the first failure. The test is
// skipped when cfg's skip predicate returns true.
func Assert(t testing.TB, cfg *Config, s host.Session, reqs ...Request) {
	t.Helper()
	if cfg.Skip() {
		t.Skip("golden: skipped by configuration")
	}
	m, err := NewMatcher(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Match(t.Context(), s, reqs...); err != nil {
		t.Fatal(err)
	}
}

// MultiScreen returns one request per configuration, all sharing name,
// sizing and the default finder. With no configurations, the Config's
// defaults are used.
func (c *Config) MultiScreen(name string, cfgs []Configuration, sz Sizing) ([]Request, error) {
	if len(cfgs) == 0 {
		defaults, err := c.DefaultConfigurations()
		if err != nil {
			return nil, err
		}
		cfgs = defaults
	}
	reqs := make([]Request, 0, len(cfgs))
	for _, cfg := range cfgs {
		reqs = append(reqs, Request{Name: name, Configuration: cfg, Sizing: sz})
	}
	return reqs, nil
}

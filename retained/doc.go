// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package retained is a small retained-mode widget host for golden tests.
//
// It implements [host.Session] on top of a CPU [surface.ImageSurface]:
// widgets are laid out with box constraints inside a surface whose size the
// test controls, and any subtree can be rasterized to PNG bytes. Layout and
// painting are fully deterministic, so images recorded on one machine
// verify on any other.
//
// The widget set is deliberately small: boxes, labels, padding, rows and
// columns, scroll views (finite and lazily built), assets that need
// priming, and paint boundaries.
//
//	tr := retained.New(retained.NewColumn(
//		retained.NewLabel("Inbox"),
//		retained.NewScroll(layout.Vertical, messages),
//	))
//	tr.SetSurfaceSize(layout.Sz(320, 480))
//	if err := tr.Settle(ctx); err != nil { ... }
//	png, err := tr.Rasterize(ctx, tr.Root())
package retained

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the raster target that test hosts paint into.
//
// Drawing operations take logical coordinates. An [ImageSurface] maps them
// to physical pixels with its device pixel ratio, so the same element tree
// painted at ratio 1 and ratio 3 produces images of different resolution
// but identical composition.
//
// # Usage
//
//	s := surface.NewImageSurface(layout.Sz(200, 100), 2)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.FillRect(surface.R(10, 10, 80, 30), color.RGBA{R: 255, A: 255})
//	s.DrawText(surface.Pt(12, 60), "OK", color.Black, 1, language.English)
//
//	img := s.Snapshot() // 400x200 pixels
//
// Text is shaped with go-text/typesetting and drawn from the outlines of
// the embedded Go Regular font, so it renders the same on every machine.
//
// Surfaces are not safe for concurrent use.
package surface

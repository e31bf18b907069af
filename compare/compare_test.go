// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compare

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	return encodePNG(t, imaging.New(w, h, c))
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func TestRecordThenCompare(t *testing.T) {
	dir := t.TempDir()
	c := New(NewFileStore(dir))
	ctx := context.Background()
	png := solidPNG(t, 8, 8, white)

	if err := c.Record(ctx, "widgets/button.phone.png", png); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "widgets", "button.phone.png")); err != nil {
		t.Fatalf("reference not written: %v", err)
	}
	if err := c.Compare(ctx, "widgets/button.phone.png", png); err != nil {
		t.Errorf("Compare after Record: %v", err)
	}
}

func TestCompareMissingReference(t *testing.T) {
	c := New(NewFileStore(t.TempDir()))

	err := c.Compare(context.Background(), "nothing.png", solidPNG(t, 2, 2, white))

	var missing *MissingReferenceError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingReferenceError", err)
	}
	if !errors.Is(err, ErrMissingReference) {
		t.Error("error does not wrap ErrMissingReference")
	}
	if missing.ID != "nothing.png" {
		t.Errorf("ID = %q", missing.ID)
	}
}

func TestCompareMismatchWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	c := New(NewFileStore(dir))
	ctx := context.Background()

	ref := imaging.New(10, 10, white)
	if err := c.Record(ctx, "card.png", encodePNG(t, ref)); err != nil {
		t.Fatal(err)
	}

	cand := imaging.Clone(ref)
	for x := 0; x < 10; x++ {
		cand.SetNRGBA(x, 0, blue)
	}

	err := c.Compare(ctx, "card.png", encodePNG(t, cand))
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *MismatchError", err)
	}
	if mismatch.DiffPixels != 10 {
		t.Errorf("DiffPixels = %d, want 10", mismatch.DiffPixels)
	}
	if mismatch.DiffPercent != 10 {
		t.Errorf("DiffPercent = %v, want 10", mismatch.DiffPercent)
	}

	want := c.ArtifactPaths("card.png")
	if mismatch.Artifacts != want {
		t.Errorf("Artifacts = %+v, want %+v", mismatch.Artifacts, want)
	}
	if filepath.Dir(want.Diff) != DefaultFailureDir(dir) {
		t.Errorf("diff written to %s", want.Diff)
	}

	diff, err := imaging.Open(want.Diff)
	if err != nil {
		t.Fatalf("open diff: %v", err)
	}
	if got := color.NRGBAModel.Convert(diff.At(3, 0)).(color.NRGBA); got != mismatchColor {
		t.Errorf("diff pixel = %v, want red", got)
	}
	if got := color.NRGBAModel.Convert(diff.At(3, 5)).(color.NRGBA); got.R != got.G || got.G != got.B {
		t.Errorf("unchanged pixel = %v, want gray", got)
	}
}

func TestCompareSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	c := New(NewFileStore(dir), WithFailureDir(filepath.Join(dir, "out")))
	ctx := context.Background()

	if err := c.Record(ctx, "a/b.png", solidPNG(t, 4, 4, white)); err != nil {
		t.Fatal(err)
	}
	err := c.Compare(ctx, "a/b.png", solidPNG(t, 4, 5, white))

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *MismatchError", err)
	}
	if mismatch.Reason == "" {
		t.Error("expected a size reason")
	}
	if mismatch.Artifacts.Diff != "" {
		t.Errorf("no diff expected for size mismatch, got %s", mismatch.Artifacts.Diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "a", "b_candidate.png")); err != nil {
		t.Errorf("candidate artifact: %v", err)
	}
}

func TestCompareNotAnImage(t *testing.T) {
	c := New(NewFileStore(t.TempDir()))
	ctx := context.Background()

	if err := c.Record(ctx, "x.png", []byte("plain text, not pixels")); err != nil {
		t.Fatal(err)
	}
	err := c.Compare(ctx, "x.png", solidPNG(t, 1, 1, white))
	if err == nil {
		t.Fatal("expected error for non-image reference")
	}
	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		t.Error("decode failure must not be reported as a mismatch")
	}
}

func TestPixelDifferTolerance(t *testing.T) {
	a := imaging.New(10, 10, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	b := imaging.New(10, 10, color.NRGBA{R: 103, G: 100, B: 100, A: 255})
	b.SetNRGBA(0, 0, color.NRGBA{A: 255})
	ab, bb := encodePNG(t, a), encodePNG(t, b)

	tests := []struct {
		name   string
		differ PixelDiffer
		match  bool
		pixels int
	}{
		{"exact", PixelDiffer{}, false, 100},
		{"channel tolerance", PixelDiffer{ChannelTolerance: 3}, false, 1},
		{"tolerance and threshold", PixelDiffer{ChannelTolerance: 3, Threshold: 1}, true, 1},
		{"threshold too low", PixelDiffer{ChannelTolerance: 3, Threshold: 0.5}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.differ.Diff(ab, bb)
			if err != nil {
				t.Fatal(err)
			}
			if res.Match != tt.match {
				t.Errorf("Match = %v, want %v", res.Match, tt.match)
			}
			if res.DiffPixels != tt.pixels {
				t.Errorf("DiffPixels = %d, want %d", res.DiffPixels, tt.pixels)
			}
		})
	}
}

func TestCustomDiffer(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	c := New(NewFileStore(dir), WithDiffer(DifferFunc(func(_, _ []byte) (Result, error) {
		calls++
		return Result{Reason: "always fails"}, nil
	})))
	ctx := context.Background()

	if err := c.Record(ctx, "r.png", []byte("ref")); err != nil {
		t.Fatal(err)
	}
	err := c.Compare(ctx, "r.png", []byte("cand"))
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) || mismatch.Reason != "always fails" {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Errorf("differ called %d times", calls)
	}
}

func TestCompareCanceled(t *testing.T) {
	c := New(NewFileStore(t.TempDir()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Compare(ctx, "x.png", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Compare err = %v, want context.Canceled", err)
	}
	if err := c.Record(ctx, "x.png", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Record err = %v, want context.Canceled", err)
	}
}

func TestFileStoreRejectsEscapingIDs(t *testing.T) {
	s := NewFileStore(t.TempDir())
	for _, id := range []string{"", "../x.png", "a/../../x.png"} {
		if err := s.Write(id, []byte("x")); err == nil {
			t.Errorf("Write(%q) succeeded", id)
		}
	}
}

func TestDefaultFailureDirIsSibling(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "goldens")
	c := New(NewFileStore(dir))

	want := filepath.Join(filepath.Dir(dir), "goldens"+FailureDirSuffix)
	if got := c.FailureDir(); got != want {
		t.Errorf("FailureDir = %s, want %s", got, want)
	}

	// A reference whose id starts with the old artifact directory name
	// must not share a directory with artifacts.
	a := c.ArtifactPaths("failures/x.png")
	if strings.HasPrefix(a.Candidate, dir+string(filepath.Separator)) {
		t.Errorf("artifact %s inside the reference directory", a.Candidate)
	}

	if got := DefaultFailureDir("."); filepath.Base(got) == "."+FailureDirSuffix {
		t.Errorf("DefaultFailureDir(.) = %s", got)
	}
}

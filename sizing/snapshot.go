// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sizing

import (
	"math"
	"reflect"

	"github.com/gogpu/golden/host"
	"github.com/gogpu/golden/layout"
)

// Snapshot is the scroll state of one scrollable at a point in time.
type Snapshot struct {
	Axis        layout.Axis
	ExtentAfter float64
}

// IsFinite reports whether the remaining extent is finite.
func (s Snapshot) IsFinite() bool {
	return !math.IsInf(s.ExtentAfter, 1)
}

// SnapshotOf captures the current scroll state of sc.
func SnapshotOf(sc host.Scrollable) Snapshot {
	return Snapshot{Axis: sc.ScrollAxis(), ExtentAfter: sc.ExtentAfter()}
}

// Source produces snapshots from the tree after the seed layout pass.
type Source func(root host.Element) []Snapshot

// AllFinite snapshots every scrollable whose remaining extent is finite.
func AllFinite() Source {
	return filtered(Snapshot.IsFinite)
}

// AllInfinite snapshots every scrollable whose remaining extent is infinite.
func AllInfinite() Source {
	return filtered(func(s Snapshot) bool { return !s.IsFinite() })
}

func filtered(keep func(Snapshot) bool) Source {
	return func(root host.Element) []Snapshot {
		var out []Snapshot
		for _, sc := range host.Scrollables(root) {
			if sn := SnapshotOf(sc); keep(sn) {
				out = append(out, sn)
			}
		}
		return out
	}
}

// Matching snapshots the scrollables the finders match. Matched elements
// that do not scroll are ignored; an element matched by several finders is
// counted once. Scrollables of a non-comparable type cannot be identified
// and are counted per match.
func Matching(finders ...host.Finder) Source {
	return func(root host.Element) []Snapshot {
		var seen []host.Scrollable
		var out []Snapshot
		for _, f := range finders {
			for _, el := range f.Find(root) {
				sc, ok := el.(host.Scrollable)
				if !ok || containsScrollable(seen, sc) {
					continue
				}
				seen = append(seen, sc)
				out = append(out, SnapshotOf(sc))
			}
		}
		return out
	}
}

func containsScrollable(seen []host.Scrollable, sc host.Scrollable) bool {
	t := reflect.TypeOf(sc)
	if !t.Comparable() {
		return false
	}
	for _, s := range seen {
		if reflect.TypeOf(s) == t && s == sc {
			return true
		}
	}
	return false
}

// Fixed returns the given snapshots regardless of the tree.
func Fixed(snaps ...Snapshot) Source {
	return func(host.Element) []Snapshot {
		return snaps
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package host

import (
	"fmt"
)

// Finder locates elements in a tree.
type Finder interface {
	// Find returns all matching elements under root in tree order.
	Find(root Element) []Element

	// String describes the finder for failure messages.
	String() string
}

type predicateFinder struct {
	desc  string
	match func(Element) bool
}

func (f predicateFinder) Find(root Element) []Element {
	var out []Element
	Walk(root, func(e Element) bool {
		if f.match(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

func (f predicateFinder) String() string { return f.desc }

// Predicate returns a Finder matching every element for which match
// returns true.
func Predicate(desc string, match func(Element) bool) Finder {
	return predicateFinder{desc: desc, match: match}
}

// ByPaintBoundary matches elements that paint into their own layer.
func ByPaintBoundary() Finder {
	return Predicate("paint boundary", func(e Element) bool {
		pb, ok := e.(PaintBoundary)
		return ok && pb.IsPaintBoundary()
	})
}

// ByKey matches elements carrying the given key.
func ByKey(key string) Finder {
	return Predicate(fmt.Sprintf("key %q", key), func(e Element) bool {
		k, ok := e.(Keyed)
		return ok && k.Key() == key
	})
}

// ByType matches elements whose dynamic type is T.
func ByType[T Element]() Finder {
	var zero T
	return Predicate(fmt.Sprintf("type %T", zero), func(e Element) bool {
		_, ok := e.(T)
		return ok
	})
}

// First returns the first element f matches under root.
func First(root Element, f Finder) (Element, error) {
	found := f.Find(root)
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f)
	}
	return found[0], nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compare checks rendered images against stored reference images.
//
// A [Comparator] reads references from a [Store], hands candidate and
// reference bytes to a [Differ], and on mismatch writes artifacts next to
// each other in a failure directory (by default [DefaultFailureDir], a
// sibling of the store):
//
//	<stem>_candidate.png  the bytes that were rendered
//	<stem>_reference.png  the stored reference
//	<stem>_diff.png       mismatching pixels in red over a grayscale candidate
//	<stem>_id.txt         the reference id, read back by [Approve]
//
// The stem is the id without its extension.
//
// Recording writes the candidate as the new reference. Whether a run
// compares or records is decided by the caller.
package compare

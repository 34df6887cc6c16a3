// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edit implements buffered editing of byte slices.
//
// A Buffer queues insertions, deletions, and replacements against an
// original byte slice and applies them all at once, so every edit is
// expressed in the offsets of the unmodified text.
package edit

import (
	"fmt"
	"sort"
)

// An Edit replaces the text in the half-open interval [Start, End) with New.
// Offsets refer to the original text of the buffer.
type Edit struct {
	Start int
	End   int
	New   string

	force bool // overlapping force-deletes merge instead of conflicting
}

// A Buffer is a queue of edits to apply to an original byte slice.
type Buffer struct {
	old []byte
	q   []Edit
}

// NewBuffer returns a buffer that accumulates edits to old.
// The buffer keeps a reference to old; the caller must not modify it.
func NewBuffer(old []byte) *Buffer {
	return &Buffer{old: old}
}

func (b *Buffer) checkRange(start, end int) {
	if start > end || start < 0 || end > len(b.old) {
		panic(fmt.Sprintf("edit: invalid range [%d,%d) in text of length %d", start, end, len(b.old)))
	}
}

// Insert inserts new at offset pos.
func (b *Buffer) Insert(pos int, new string) {
	b.checkRange(pos, pos)
	b.q = append(b.q, Edit{Start: pos, End: pos, New: new})
}

// Delete deletes the text in [start, end).
func (b *Buffer) Delete(start, end int) {
	b.checkRange(start, end)
	b.q = append(b.q, Edit{Start: start, End: end})
}

// ForceDelete deletes the text in [start, end), merging with any
// overlapping force-deletes instead of treating the overlap as an error.
func (b *Buffer) ForceDelete(start, end int) {
	b.checkRange(start, end)
	b.q = append(b.q, Edit{Start: start, End: end, force: true})
}

// Replace replaces the text in [start, end) with new.
func (b *Buffer) Replace(start, end int, new string) {
	b.checkRange(start, end)
	b.q = append(b.q, Edit{Start: start, End: end, New: new})
}

// Edits returns the queued edits sorted by start offset, with overlapping
// force-deletes merged. It panics if any other pair of edits overlaps:
// conflicting edits mean the callers disagreed about the text, and applying
// an arbitrary one would corrupt it. Insertions at the same offset are kept
// in the order they were queued.
func (b *Buffer) Edits() []Edit {
	sort.SliceStable(b.q, func(i, j int) bool {
		if b.q[i].Start != b.q[j].Start {
			return b.q[i].Start < b.q[j].Start
		}
		return b.q[i].End < b.q[j].End
	})

	var out []Edit
	for _, e := range b.q {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if e.Start < last.End {
				if e.force && last.force {
					if e.End > last.End {
						last.End = e.End
					}
					continue
				}
				panic(fmt.Sprintf("edit: overlapping edits: [%d,%d)->%q and [%d,%d)->%q",
					last.Start, last.End, last.New, e.Start, e.End, e.New))
			}
		}
		out = append(out, e)
	}
	return out
}

// Bytes returns a new byte slice containing the original text
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	var new []byte
	offset := 0
	for _, e := range b.Edits() {
		new = append(new, b.old[offset:e.Start]...)
		new = append(new, e.New...)
		offset = e.End
	}
	new = append(new, b.old[offset:]...)
	return new
}

// String returns the edited text as a string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

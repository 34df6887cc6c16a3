// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"strings"

	"lgtrf/logtalk"
)

// A Snapshot is one point in a sequence of workspace states. Each
// operation edits the current snapshot; Apply bakes the edits into a
// new snapshot for the next operation, with the parent chain kept so
// that diffs and writes compare against the original files.
type Snapshot struct {
	parent *Snapshot
	r      *Refactor

	files map[string]*File
	names []string
	edits map[string]*Edit
	terms map[string][]logtalk.Term

	index SymbolIndex

	Errors *ErrorList
}

// A File is one workspace source file. Name is slash-separated and
// relative to the workspace root.
type File struct {
	Name string
	Text []byte
}

// Refactor returns the Refactor that loaded the snapshot chain.
func (s *Snapshot) Refactor() *Refactor { return s.r }

// Files returns the workspace file names in sorted order.
func (s *Snapshot) Files() []string { return s.names }

// Text returns the text of a file as loaded into this snapshot,
// without any edits queued since.
func (s *Snapshot) Text(name string) string {
	f := s.files[name]
	if f == nil {
		return ""
	}
	return string(f.Text)
}

// Texts returns the file texts of this snapshot, keyed by name.
// The byte slices are shared, not copied.
func (s *Snapshot) Texts() map[string][]byte {
	m := make(map[string][]byte, len(s.files))
	for name, f := range s.files {
		m[name] = f.Text
	}
	return m
}

// Terms returns the top-level term segmentation of a file, computed on
// first use and cached for the life of the snapshot.
func (s *Snapshot) Terms(name string) []logtalk.Term {
	if terms, ok := s.terms[name]; ok {
		return terms
	}
	if s.terms == nil {
		s.terms = make(map[string][]logtalk.Term)
	}
	terms := logtalk.Terms(s.Text(name))
	s.terms[name] = terms
	return terms
}

// SetIndex installs the symbol index used to resolve and collect
// targets in this snapshot. The index must have been built from this
// snapshot's texts.
func (s *Snapshot) SetIndex(ix SymbolIndex) { s.index = ix }

// Index returns the symbol index installed with SetIndex.
func (s *Snapshot) Index() SymbolIndex { return s.index }

// Pos converts a byte offset in a file to a position.
func (s *Snapshot) Pos(name string, off int) logtalk.Position {
	text := s.Text(name)
	return logtalk.Position{
		File: name,
		Line: logtalk.LineAt(text, off),
		Col:  logtalk.ColAt(text, off),
	}
}

// ErrorAt adds an error at a position to the snapshot's error list.
func (s *Snapshot) ErrorAt(pos logtalk.Position, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	msg = strings.ReplaceAll(msg, "\n", "\n\t")
	s.Errors.Add(&Error{Pos: pos, Msg: msg})
}

// Apply returns a new snapshot with all queued edits applied to the
// file texts. The receiver becomes the parent of the new snapshot. Any
// installed index is not carried over: it describes the old texts.
func (s *Snapshot) Apply() *Snapshot {
	next := &Snapshot{
		parent: s,
		r:      s.r,
		files:  make(map[string]*File, len(s.files)),
		names:  s.names,
		edits:  make(map[string]*Edit),
		Errors: &ErrorList{},
	}
	for name := range s.files {
		next.files[name] = &File{Name: name, Text: s.currentBytes(name)}
	}
	return next
}

// termIndexForLine locates the term to rewrite for a location line:
// the term starting on that line, or the term spanning it when the
// line points into a multi-line term. It returns -1 for blank or
// comment-only lines.
func (s *Snapshot) termIndexForLine(name string, line int) int {
	text := s.Text(name)
	off := logtalk.LineOffset(text, line)
	if off < 0 {
		return -1
	}
	terms := s.Terms(name)
	end := logtalk.LineEnd(text, off)
	if k := logtalk.TermIndexAt(terms, off); k >= 0 {
		if logtalk.LineAt(text, terms[k].Start) == line {
			return k
		}
		// The line starts inside a term that began earlier. Prefer a
		// term starting on this line (two terms sharing a line), else
		// keep the spanning term.
		for j := k + 1; j < len(terms); j++ {
			if terms[j].Start > end {
				break
			}
			if logtalk.LineAt(text, terms[j].Start) == line {
				return j
			}
		}
		return k
	}
	// The line is blank or inside a comment; a term may still start
	// later on it.
	for j, u := range terms {
		if u.Start > end {
			break
		}
		if u.Start >= off && logtalk.LineAt(text, u.Start) == line {
			return j
		}
	}
	return -1
}

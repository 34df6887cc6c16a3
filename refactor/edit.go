// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"lgtrf/diff"
	"lgtrf/edit"
)

// An Edit is the edit buffer for one file in a snapshot, created on
// demand by the first rewrite touching the file.
type Edit struct {
	Name    string
	OldText []byte
	Buffer  *edit.Buffer
}

func (s *Snapshot) editAt(name string) *Edit {
	ed := s.edits[name]
	if ed == nil {
		f := s.files[name]
		if f == nil {
			panic("file not in snapshot: " + name)
		}
		ed = &Edit{Name: name, OldText: f.Text, Buffer: edit.NewBuffer(f.Text)}
		s.edits[name] = ed
	}
	return ed
}

// ReplaceAt replaces the text in [lo, hi) of the named file with repl.
// Offsets refer to the snapshot's text of the file, not to any edits
// queued since.
func (s *Snapshot) ReplaceAt(name string, lo, hi int, repl string) {
	s.editAt(name).Buffer.Replace(lo, hi, repl)
}

// InsertAt inserts repl at offset pos of the named file.
func (s *Snapshot) InsertAt(name string, pos int, repl string) {
	s.ReplaceAt(name, pos, pos, repl)
}

// DeleteAt deletes the text in [lo, hi) of the named file.
func (s *Snapshot) DeleteAt(name string, lo, hi int) {
	s.ReplaceAt(name, lo, hi, "")
}

// currentBytes returns the text of the file with queued edits applied.
func (s *Snapshot) currentBytes(name string) []byte {
	if ed := s.edits[name]; ed != nil {
		return ed.Buffer.Bytes()
	}
	if f := s.files[name]; f != nil {
		return f.Text
	}
	return nil
}

// oldBytes returns the text of the file in the original snapshot at the
// root of the parent chain.
func (s *Snapshot) oldBytes(name string) []byte {
	for s.parent != nil {
		s = s.parent
	}
	if f := s.files[name]; f != nil {
		return f.Text
	}
	return nil
}

// Modified returns the names of files whose current text differs from
// the original files, sorted.
func (s *Snapshot) Modified() []string {
	var names []string
	for _, name := range s.names {
		if !bytes.Equal(s.oldBytes(name), s.currentBytes(name)) {
			names = append(names, name)
		}
	}
	return names
}

// Diff returns the unified diff between the original files and the
// current state of the snapshot.
func (s *Snapshot) Diff() ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range s.Modified() {
		old := s.oldBytes(name)
		new := s.currentBytes(name)
		d, err := diff.Diff("old/"+name, old, "new/"+name, new)
		if err != nil {
			return nil, err
		}
		buf.Write(d)
	}
	return buf.Bytes(), nil
}

// Write writes the modified files back to the workspace. Files that an
// error kept from being written are reported individually; the returned
// error only summarizes.
func (s *Snapshot) Write() error {
	failed := false
	for _, name := range s.Modified() {
		path := filepath.Join(s.r.root, filepath.FromSlash(name))
		if err := os.WriteFile(path, s.currentBytes(name), 0666); err != nil {
			fmt.Fprintf(s.r.Stderr, "%s\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("errors writing files")
	}
	return nil
}

// A TextEdit is one replacement in a file: the text in [Start, End) of
// the original file becomes New. Offsets are byte offsets into the file
// as it was when the operation began.
type TextEdit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	New   string `json:"new"`
}

// An EditSet is the machine-readable form of one operation's edits:
// every file changed, with all edits expressed against the unmodified
// text, so an editor can apply them atomically.
type EditSet struct {
	Files map[string][]TextEdit `json:"files"`
}

// EditSet returns the queued edits of this snapshot as an EditSet.
// Files without edits are absent.
func (s *Snapshot) EditSet() *EditSet {
	set := &EditSet{Files: make(map[string][]TextEdit)}
	names := make([]string, 0, len(s.edits))
	for name := range s.edits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var tes []TextEdit
		for _, e := range s.edits[name].Buffer.Edits() {
			tes = append(tes, TextEdit{Start: e.Start, End: e.End, New: e.New})
		}
		if len(tes) > 0 {
			set.Files[name] = tes
		}
	}
	return set
}

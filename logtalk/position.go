// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logtalk

import (
	"fmt"
	"strings"
)

// A Position is a point in a source file. Line and Col are 1-based;
// Col counts bytes from the start of the line. A zero Col means the
// position names a line but no particular column.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	switch {
	case p.File == "":
		return "-"
	case p.Line == 0:
		return p.File
	case p.Col == 0:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// IsValid reports whether the position names at least a file.
func (p Position) IsValid() bool { return p.File != "" }

// A Location is a line range in a source file, 1-based and inclusive.
// Locations identify whole terms (a directive or a clause), not points.
type Location struct {
	File    string
	Line    int
	EndLine int
}

func (l Location) String() string {
	if l.EndLine > l.Line {
		return fmt.Sprintf("%s:%d-%d", l.File, l.Line, l.EndLine)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Start returns the position of the first line of the location.
func (l Location) Start() Position { return Position{File: l.File, Line: l.Line} }

// LineStart returns the offset of the first byte of the line containing off.
func LineStart(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	if i := strings.LastIndexByte(text[:off], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// LineEnd returns the offset just past the last byte of the line containing
// off, excluding the newline itself.
func LineEnd(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(text)
}

// LineAt returns the 1-based line number of the line containing off.
func LineAt(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	return 1 + strings.Count(text[:off], "\n")
}

// ColAt returns the 1-based byte column of off within its line.
func ColAt(text string, off int) int {
	return off - LineStart(text, off) + 1
}

// LineOffset returns the offset of the first byte of the 1-based line.
// It returns -1 if the text has fewer lines.
func LineOffset(text string, line int) int {
	if line < 1 {
		return -1
	}
	off := 0
	for ; line > 1; line-- {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return -1
		}
		off += i + 1
	}
	return off
}

// Indent returns the leading whitespace of the line containing off.
func Indent(text string, off int) string {
	lo := LineStart(text, off)
	hi := lo
	for hi < len(text) && (text[hi] == ' ' || text[hi] == '\t') {
		hi++
	}
	return text[lo:hi]
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"strings"

	"lgtrf/logtalk"
)

// Every argument-bearing form is rewritten by the one routine in this
// file: clause heads, body calls, directive callables, documentation
// lists, and entity identifiers. The forms differ only in where the
// argument list sits and what text an added position receives.

// rewriteOccurrence applies op to the occurrence of name at nameStart
// when its argument count matches arity. value is the text inserted for
// an added position. An occurrence with a different argument count is
// left alone; the return value reports whether this one matched.
func (s *Snapshot) rewriteOccurrence(file string, nameStart int, name string, arity int, op *Op, value string) bool {
	text := s.Text(file)
	end := nameStart + len(name)
	if end < len(text) && text[end] == '(' {
		close := logtalk.MatchDelim(text, end)
		if close < 0 {
			return false
		}
		if logtalk.CountArgs(text, end, close) != arity {
			return false
		}
		s.rewriteArgSpans(file, end, close, op, value, false)
		return true
	}
	if arity != 0 {
		return false
	}
	// A bare atom followed by / is an indicator literal, not a call;
	// those are rewritten by the directive logic.
	j := end
	for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
		j++
	}
	if j < len(text) && text[j] == '/' && !(j+1 < len(text) && text[j+1] == '*') {
		return false
	}
	if op.Kind == OpAdd {
		s.InsertAt(file, end, "("+value+")")
	}
	return true
}

// rewriteOccurrencesIn rewrites every matching occurrence of name whose
// text starts in [lo, hi), skipping offsets in skip. It returns how many
// occurrences matched.
func (s *Snapshot) rewriteOccurrencesIn(file string, lo, hi int, name string, arity int, op *Op, value string, skip map[int]bool) int {
	text := s.Text(file)
	count := 0
	for i := lo; ; {
		j := logtalk.FindAtom(text, name, i)
		if j < 0 || j >= hi {
			break
		}
		if skip == nil || !skip[j] {
			if s.rewriteOccurrence(file, j, name, arity, op, value) {
				count++
			}
		}
		i = j + len(name)
	}
	return count
}

// rewriteArgSpans applies op to the argument list delimited by open and
// close, by span surgery: untouched arguments keep their bytes, so an
// identity reorder queues no edits at all. The caller has verified that
// the argument count matches op. keepDelims distinguishes lists, which
// keep "[]" when emptied, from callables, which drop the parentheses.
func (s *Snapshot) rewriteArgSpans(file string, open, close int, op *Op, value string, keepDelims bool) {
	text := s.Text(file)
	spans := logtalk.SplitArgSpans(text, open, close)
	n := len(spans)
	switch op.Kind {
	case OpAdd:
		switch {
		case n == 0:
			s.ReplaceAt(file, open+1, close, value)
		case op.Pos <= n:
			s.InsertAt(file, spans[op.Pos-1][0], value+", ")
		default:
			s.InsertAt(file, spans[n-1][1], ", "+value)
		}
	case OpRemove:
		switch {
		case n == 1:
			if keepDelims {
				s.ReplaceAt(file, open+1, close, "")
			} else {
				s.ReplaceAt(file, open, close+1, "")
			}
		case op.Pos < n:
			s.DeleteAt(file, spans[op.Pos-1][0], spans[op.Pos][0])
		default:
			s.DeleteAt(file, spans[n-2][1], spans[n-1][1])
		}
	case OpReorder:
		for i, p := range op.Perm {
			if p == i+1 {
				continue
			}
			repl := text[spans[p-1][0]:spans[p-1][1]]
			if strings.ContainsRune(repl, '\n') {
				repl = logtalk.CollapseSpace(repl)
			}
			s.ReplaceAt(file, spans[i][0], spans[i][1], repl)
		}
	}
}

// editEntryList applies op to a bracketed list whose entries may sit
// one per line. The list is rewritten only when its entry count equals
// wantLen, which ties documentation lists to the arity being changed.
func (s *Snapshot) editEntryList(file string, open, close int, op *Op, value string, wantLen int) bool {
	text := s.Text(file)
	spans := logtalk.SplitArgSpans(text, open, close)
	if len(spans) != wantLen {
		return false
	}
	if logtalk.LineAt(text, open) == logtalk.LineAt(text, close) {
		s.rewriteArgSpans(file, open, close, op, value, true)
		return true
	}
	s.editMultilineList(file, open, close, spans, op, value)
	return true
}

// editMultilineList edits a list laid out across lines, treating each
// entry's line as the unit: insertion adds a line, removal drops one,
// and the comma bookkeeping keeps the final entry bare.
func (s *Snapshot) editMultilineList(file string, open, close int, spans [][2]int, op *Op, value string) {
	text := s.Text(file)
	n := len(spans)
	switch op.Kind {
	case OpAdd:
		s.insertListEntry(file, open, close, spans, op.Pos, value)

	case OpRemove:
		p := op.Pos
		entry := spans[p-1]
		if !entryOwnsLine(text, open, close, spans, p-1) {
			switch {
			case p < n:
				s.DeleteAt(file, entry[0], spans[p][0])
			case n > 1:
				s.DeleteAt(file, spans[p-2][1], entry[1])
			default:
				s.ReplaceAt(file, open+1, close, "")
			}
			return
		}
		lo := logtalk.LineStart(text, entry[0])
		hi := logtalk.LineEnd(text, entry[1])
		if hi < len(text) {
			hi++ // take the newline with the line
		}
		if n > 1 {
			gapLo, gapHi := entry[1], close
			if p == n {
				gapLo, gapHi = spans[p-2][1], entry[0]
			} else if spans[p][0] < gapHi {
				gapHi = spans[p][0]
			}
			if c := findComma(text, gapLo, gapHi); c >= 0 && !(lo <= c && c < hi) {
				s.DeleteAt(file, c, c+1)
			}
		}
		s.DeleteAt(file, lo, hi)

	case OpReorder:
		for i, p := range op.Perm {
			if p == i+1 {
				continue
			}
			repl := text[spans[p-1][0]:spans[p-1][1]]
			if strings.ContainsRune(repl, '\n') {
				repl = logtalk.CollapseSpace(repl)
			}
			s.ReplaceAt(file, spans[i][0], spans[i][1], repl)
		}
	}
}

// insertListEntry inserts entry text at 1-based position pos of a
// multi-line list, on its own line when the neighbors have their own.
func (s *Snapshot) insertListEntry(file string, open, close int, spans [][2]int, pos int, entry string) {
	text := s.Text(file)
	n := len(spans)
	if n == 0 {
		s.ReplaceAt(file, open+1, close, entry)
		return
	}
	if pos <= n {
		anchor := spans[pos-1]
		if logtalk.LineAt(text, anchor[0]) == logtalk.LineAt(text, open) {
			s.InsertAt(file, anchor[0], entry+", ")
			return
		}
		ls := logtalk.LineStart(text, anchor[0])
		s.InsertAt(file, ls, logtalk.Indent(text, anchor[0])+entry+",\n")
		return
	}
	last := spans[n-1]
	if logtalk.LineAt(text, last[1]) == logtalk.LineAt(text, close) {
		s.InsertAt(file, last[1], ", "+entry)
		return
	}
	s.InsertAt(file, last[1], ",")
	le := logtalk.LineEnd(text, last[1])
	s.InsertAt(file, le+1, logtalk.Indent(text, last[0])+entry+"\n")
}

// entryOwnsLine reports whether the entry at idx is alone on its lines:
// no list bracket and no neighboring entry shares them.
func entryOwnsLine(text string, open, close int, spans [][2]int, idx int) bool {
	e := spans[idx]
	first := logtalk.LineAt(text, e[0])
	last := logtalk.LineAt(text, e[1])
	if logtalk.LineAt(text, open) == first || logtalk.LineAt(text, close) == last {
		return false
	}
	if idx > 0 && logtalk.LineAt(text, spans[idx-1][1]) == first {
		return false
	}
	if idx+1 < len(spans) && logtalk.LineAt(text, spans[idx+1][0]) == last {
		return false
	}
	return true
}

// findComma returns the offset of the first top-level comma in [lo, hi),
// or -1.
func findComma(text string, lo, hi int) int {
	for i := lo; i < hi && i < len(text); i++ {
		switch text[i] {
		case ',':
			return i
		case '%':
			j := strings.IndexByte(text[i:], '\n')
			if j < 0 {
				return -1
			}
			i += j
		}
	}
	return -1
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logtalk

import "strings"

// A ClauseHead describes the head of a clause or grammar rule whose term
// starts the text offset Start. Open and Close delimit the head argument
// list, both -1 for a bare head. Neck is ":-" for a rule, "-->" for a
// grammar rule, and "" for a fact.
type ClauseHead struct {
	Name  string
	Arity int
	Start int
	Open  int
	Close int
	Neck  string
}

// IsNonTerminal reports whether the head belongs to a grammar rule.
func (h ClauseHead) IsNonTerminal() bool { return h.Neck == "-->" }

// ParseClauseAt parses the head of the clause starting at off. Heads
// must be unquoted atoms, optionally with an argument list; quoted and
// operator heads are not recognized.
func ParseClauseAt(text string, off int) (ClauseHead, bool) {
	i := off
	if i >= len(text) || !isLowerByte(text[i]) {
		return ClauseHead{}, false
	}
	start := i
	for i < len(text) && isIdentByte(text[i]) {
		i++
	}
	h := ClauseHead{Name: text[start:i], Start: start, Open: -1, Close: -1}
	if i < len(text) && text[i] == '(' {
		close := MatchDelim(text, i)
		if close < 0 {
			return ClauseHead{}, false
		}
		h.Open, h.Close = i, close
		h.Arity = CountArgs(text, i, close)
		i = close + 1
	}
	j := NextTermStart(text, i)
	if j < 0 {
		j = len(text)
	}
	switch {
	case strings.HasPrefix(text[j:], "-->"):
		h.Neck = "-->"
	case strings.HasPrefix(text[j:], ":-"):
		h.Neck = ":-"
	case j < len(text) && text[j] == '.' && isClauseDot(text, j):
		h.Neck = ""
	default:
		return ClauseHead{}, false
	}
	return h, true
}

// BraceDepth returns the {}-nesting depth at off, scanning from a known
// clean offset from. In a grammar rule body, depth > 0 means off sits in
// a bracketed goal that calls predicates rather than non-terminals.
func BraceDepth(text string, from, off int) int {
	depth := 0
	for i := from; i < off && i < len(text); {
		if j := opaque(text, i); j > i {
			i = j
			continue
		}
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		i++
	}
	return depth
}

// InOpaque reports whether off falls inside an opaque region, scanning
// from a known clean offset from.
func InOpaque(text string, from, off int) bool {
	for i := from; i < off && i < len(text); {
		if j := opaque(text, i); j > i {
			if off < j {
				return true
			}
			i = j
			continue
		}
		i++
	}
	return false
}

// AtomAt returns the unquoted atom whose span contains off, and the
// offset where it starts. It returns "" if off is not inside one. The
// caller is responsible for checking that off is not in an opaque region.
func AtomAt(text string, off int) (int, string) {
	if off < 0 || off >= len(text) || !isIdentByte(text[off]) {
		return -1, ""
	}
	start := off
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	if !isLowerByte(text[start]) {
		return -1, ""
	}
	end := off
	for end < len(text) && isIdentByte(text[end]) {
		end++
	}
	return start, text[start:end]
}

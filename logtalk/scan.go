// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logtalk provides tolerant scanning of Logtalk source text.
//
// The scanner does not parse terms. It tracks just enough syntax to walk
// raw text safely: delimiter nesting, quoted atoms and strings, line and
// block comments, and character-code literals. Everything else is treated
// as plain bytes, so files that do not parse (mid-edit, macro-heavy, or
// simply broken) can still be scanned for the constructs of interest.
package logtalk

import "strings"

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigitByte(c byte) bool { return '0' <= c && c <= '9' }

func isLowerByte(c byte) bool { return 'a' <= c && c <= 'z' }

// isIdentByte reports whether c can appear inside an unquoted atom or
// variable name.
func isIdentByte(c byte) bool {
	return c == '_' || isDigitByte(c) ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// opaque returns the offset just past the opaque region starting at i:
// a quoted atom, a double-quoted string, a back-quoted term, a % line
// comment, a /* */ block comment, or a 0'c character-code literal.
// If text[i] does not open an opaque region, opaque returns i.
func opaque(text string, i int) int {
	switch text[i] {
	case '\'', '"', '`':
		return skipQuoted(text, i)
	case '%':
		j := strings.IndexByte(text[i:], '\n')
		if j < 0 {
			return len(text)
		}
		return i + j
	case '/':
		if i+1 < len(text) && text[i+1] == '*' {
			j := strings.Index(text[i+2:], "*/")
			if j < 0 {
				return len(text)
			}
			return i + 2 + j + 2
		}
	case '0':
		// 0'c is a character code only when the 0 starts a token.
		if i+1 < len(text) && text[i+1] == '\'' && (i == 0 || !isIdentByte(text[i-1])) {
			return skipCharCode(text, i)
		}
	}
	return i
}

// isCommentStart reports whether text[i] opens a % or /* comment.
func isCommentStart(text string, i int) bool {
	return text[i] == '%' || (text[i] == '/' && i+1 < len(text) && text[i+1] == '*')
}

// skipQuoted returns the offset just past the quoted region opening at i,
// honoring backslash escapes and doubled quote characters. An unescaped
// newline terminates the region early so that an unclosed quote cannot
// swallow the rest of the file.
func skipQuoted(text string, i int) int {
	q := text[i]
	i++
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			return i
		case q:
			if i+1 < len(text) && text[i+1] == q {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(text)
}

// skipCharCode returns the offset just past the 0'c literal starting at i.
func skipCharCode(text string, i int) int {
	j := i + 2 // past 0'
	if j >= len(text) {
		return len(text)
	}
	switch text[j] {
	case '\\':
		j++
		if j >= len(text) {
			return len(text)
		}
		if text[j] == 'x' || ('0' <= text[j] && text[j] <= '7') {
			// \x41\ and \101\ codes end with a backslash.
			for j < len(text) && text[j] != '\\' && text[j] != '\n' {
				j++
			}
			if j < len(text) && text[j] == '\\' {
				j++
			}
			return j
		}
		return j + 1
	case '\'':
		// 0''' denotes the quote character.
		if j+1 < len(text) && text[j+1] == '\'' {
			return j + 2
		}
		return j + 1
	default:
		return j + 1
	}
}

// MatchDelim scans forward from the opening delimiter at open ('(', '[',
// or '{') and returns the offset of the closing delimiter that balances
// it, skipping opaque regions. Delimiter kinds are not distinguished:
// only the nesting depth matters. It returns -1 if the text ends first.
func MatchDelim(text string, open int) int {
	depth := 0
	for i := open; i < len(text); {
		if j := opaque(text, i); j > i {
			i = j
			continue
		}
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// SplitArgSpans returns the [start, end) offsets of the top-level
// comma-separated spans between open and close (both exclusive), with
// surrounding whitespace and comments trimmed from each span. Commas
// nested inside delimiters or opaque regions do not split. Blank inner
// text yields nil.
func SplitArgSpans(text string, open, close int) [][2]int {
	var spans [][2]int
	depth := 0
	start := open + 1
	for i := open + 1; i < close; {
		if j := opaque(text, i); j > i {
			i = j
			continue
		}
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				spans = append(spans, trimSpan(text, start, i))
				start = i + 1
			}
		}
		i++
	}
	last := trimSpan(text, start, close)
	if last[0] == last[1] && len(spans) == 0 {
		return nil
	}
	return append(spans, last)
}

// SplitArgs returns the trimmed text of each span from SplitArgSpans.
func SplitArgs(text string, open, close int) []string {
	spans := SplitArgSpans(text, open, close)
	args := make([]string, len(spans))
	for i, sp := range spans {
		args[i] = text[sp[0]:sp[1]]
	}
	return args
}

// CountArgs returns the number of top-level comma-separated arguments
// between open and close.
func CountArgs(text string, open, close int) int {
	return len(SplitArgSpans(text, open, close))
}

// trimSpan shrinks [lo, hi) to exclude leading and trailing whitespace
// and comments. Quoted text and character literals count as content.
func trimSpan(text string, lo, hi int) [2]int {
	start, end := hi, lo
	for i := lo; i < hi; {
		if isSpaceByte(text[i]) {
			i++
			continue
		}
		if isCommentStart(text, i) {
			i = opaque(text, i)
			continue
		}
		if i < start {
			start = i
		}
		if j := opaque(text, i); j > i {
			i = j
		} else {
			i++
		}
		end = i
	}
	if start > end {
		return [2]int{lo, lo}
	}
	return [2]int{start, end}
}

// FindAtom returns the offset of the next occurrence of the unquoted atom
// name at or after from, skipping opaque regions and rejecting occurrences
// embedded in longer identifiers. It returns -1 if there is none.
func FindAtom(text, name string, from int) int {
	if name == "" {
		return -1
	}
	for i := from; i+len(name) <= len(text); {
		if j := opaque(text, i); j > i {
			i = j
			continue
		}
		if text[i] == name[0] && strings.HasPrefix(text[i:], name) &&
			(i == 0 || !isIdentByte(text[i-1])) &&
			(i+len(name) == len(text) || !isIdentByte(text[i+len(name)])) {
			return i
		}
		i++
	}
	return -1
}

// ClauseEnd returns the offset just past the '.' that terminates the
// clause or directive being scanned from from: a '.' at delimiter depth
// zero followed by whitespace, a comment, or the end of text. It returns
// -1 if no terminator is found.
func ClauseEnd(text string, from int) int {
	depth := 0
	for i := from; i < len(text); {
		if j := opaque(text, i); j > i {
			i = j
			continue
		}
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '.':
			if depth <= 0 && isClauseDot(text, i) {
				return i + 1
			}
		}
		i++
	}
	return -1
}

// isClauseDot reports whether the '.' at i ends a term: it must be
// followed by layout, a comment, or the end of text, which excludes
// decimal points, '..' operators, and dotted pairs.
func isClauseDot(text string, i int) bool {
	if i+1 >= len(text) {
		return true
	}
	return isSpaceByte(text[i+1]) || isCommentStart(text, i+1)
}

// NextTermStart returns the offset of the first byte of the next term at
// or after from, skipping whitespace and comments. It returns -1 at the
// end of text.
func NextTermStart(text string, from int) int {
	for i := from; i < len(text); {
		if isSpaceByte(text[i]) {
			i++
			continue
		}
		if isCommentStart(text, i) {
			i = opaque(text, i)
			continue
		}
		return i
	}
	return -1
}

// A Term is the extent of one top-level term: a directive or a clause.
// Start is the offset of its first byte; End is the offset just past its
// terminating '.', or past its last byte when the terminator is missing.
type Term struct {
	Start     int
	End       int
	Directive bool
}

// Terms segments text into top-level terms. A term with no terminator
// (trailing garbage, unfinished edit) extends to the end of text, so the
// result always covers every non-blank, non-comment byte.
func Terms(text string) []Term {
	var terms []Term
	i := NextTermStart(text, 0)
	for i >= 0 {
		end := ClauseEnd(text, i)
		if end < 0 {
			end = len(text)
		}
		terms = append(terms, Term{
			Start:     i,
			End:       end,
			Directive: strings.HasPrefix(text[i:], ":-"),
		})
		i = NextTermStart(text, end)
	}
	return terms
}

// TermIndexAt returns the index in terms of the term containing off,
// or -1 if off falls between terms.
func TermIndexAt(terms []Term, off int) int {
	lo, hi := 0, len(terms)
	for lo < hi {
		mid := (lo + hi) / 2
		if terms[mid].End <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(terms) && terms[lo].Start <= off {
		return lo
	}
	return -1
}

// TermAt returns the term containing off, using a list from Terms.
func TermAt(terms []Term, off int) (Term, bool) {
	if i := TermIndexAt(terms, off); i >= 0 {
		return terms[i], true
	}
	return Term{}, false
}

// CollapseSpace rewrites s so that each run of layout reads as a single
// space, letting a term gathered across line breaks be reinserted on one
// line. Quoted text is preserved; line comments cannot survive the join
// and are dropped.
func CollapseSpace(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if isSpaceByte(s[i]) || s[i] == '%' {
			for i < len(s) && (isSpaceByte(s[i]) || s[i] == '%') {
				if s[i] == '%' {
					i = opaque(s, i)
				} else {
					i++
				}
			}
			b.WriteByte(' ')
			continue
		}
		if j := opaque(s, i); j > i {
			b.WriteString(s[i:j])
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return strings.TrimSpace(b.String())
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"strconv"

	"lgtrf/logtalk"
)

// rewriteDirective applies op for target t to the directive d.
// It reports whether the directive mentions the target; when it does
// not, no edits have been queued. Each directive kind has its own
// placeholder: mode templates take ?, meta templates take *, and
// documentation lists take the new argument's name.
func (s *Snapshot) rewriteDirective(file string, d *logtalk.Directive, t *Target, op *Op) bool {
	switch d.Kind {
	case logtalk.DirScope, logtalk.DirSynchronized, logtalk.DirCoinductive,
		logtalk.DirDynamic, logtalk.DirDiscontiguous, logtalk.DirMultifile,
		logtalk.DirUses:
		return s.rewriteIndicatorMentions(file, d.Open, d.End, t) > 0
	case logtalk.DirMode:
		return s.rewriteModeDirective(file, d, t, op)
	case logtalk.DirMetaPredicate:
		if t.Ind.Kind != logtalk.Predicate {
			return false
		}
		return s.rewriteOccurrencesIn(file, d.Open+1, d.Close, t.Ind.Name, t.Ind.Arity, op, "*", nil) > 0
	case logtalk.DirMetaNonTerminal:
		if t.Ind.Kind != logtalk.NonTerminal {
			return false
		}
		return s.rewriteOccurrencesIn(file, d.Open+1, d.Close, t.Ind.Name, t.Ind.Arity, op, "*", nil) > 0
	case logtalk.DirInfo:
		return s.rewriteInfoDirective(file, d, t, op)
	}
	return false
}

// rewriteIndicatorMentions updates the arity of every indicator literal
// in [lo, hi) equal to t.Ind and returns how many it found. An aliased
// mention, "f/2 as g/2" in a uses list, keeps the alias arity in step.
func (s *Snapshot) rewriteIndicatorMentions(file string, lo, hi int, t *Target) int {
	text := s.Text(file)
	count := 0
	for i := lo; i < hi; {
		lit, ok := logtalk.FindIndicatorLiteral(text, i, hi)
		if !ok {
			break
		}
		i = lit.End
		if lit.Ind != t.Ind {
			continue
		}
		count++
		if t.Ind.Arity != t.New.Arity {
			s.ReplaceAt(file, lit.ArityStart, lit.End, strconv.Itoa(t.New.Arity))
		}
		if alias, ok := aliasLiteral(text, lit.End, hi, t.Ind); ok {
			if t.Ind.Arity != t.New.Arity {
				s.ReplaceAt(file, alias.ArityStart, alias.End, strconv.Itoa(t.New.Arity))
			}
			i = alias.End
		}
	}
	return count
}

// aliasLiteral parses an "as name/arity" continuation after an
// indicator literal ending at i. The alias counts as one only when its
// kind and arity match the aliased indicator's.
func aliasLiteral(text string, i, hi int, ind logtalk.Indicator) (logtalk.IndicatorLiteral, bool) {
	j := i
	for j < hi && (text[j] == ' ' || text[j] == '\t') {
		j++
	}
	if j+2 >= hi || text[j] != 'a' || text[j+1] != 's' || !isLayoutByte(text[j+2]) {
		return logtalk.IndicatorLiteral{}, false
	}
	j += 2
	for j < hi && isLayoutByte(text[j]) {
		j++
	}
	lit, ok := logtalk.FindIndicatorLiteral(text, j, hi)
	if !ok || lit.Start != j || lit.Ind.Kind != ind.Kind || lit.Ind.Arity != ind.Arity {
		return logtalk.IndicatorLiteral{}, false
	}
	return lit, true
}

// rewriteModeDirective edits the callable template that the first
// argument of a mode directive holds. The template must start the
// argument and carry the target's exact argument count.
func (s *Snapshot) rewriteModeDirective(file string, d *logtalk.Directive, t *Target, op *Op) bool {
	text := s.Text(file)
	spans := logtalk.SplitArgSpans(text, d.Open, d.Close)
	if len(spans) == 0 {
		return false
	}
	lo := spans[0][0]
	start, name := logtalk.NextAtom(text, lo, spans[0][1])
	if start != lo || name != t.Ind.Name {
		return false
	}
	return s.rewriteOccurrence(file, start, name, t.Ind.Arity, op, "?")
}

// rewriteInfoDirective handles a predicate info/2 directive. The first
// argument must be the target indicator; only then is the second
// argument's pair list edited, so an info block for an overload of a
// different arity is never touched.
func (s *Snapshot) rewriteInfoDirective(file string, d *logtalk.Directive, t *Target, op *Op) bool {
	text := s.Text(file)
	spans := logtalk.SplitArgSpans(text, d.Open, d.Close)
	if len(spans) != 2 {
		return false
	}
	lit, ok := logtalk.FindIndicatorLiteral(text, spans[0][0], spans[0][1])
	if !ok || lit.Start != spans[0][0] || lit.Ind != t.Ind {
		return false
	}
	if t.Ind.Arity != t.New.Arity {
		s.ReplaceAt(file, lit.ArityStart, lit.End, strconv.Itoa(t.New.Arity))
	}
	s.rewriteInfoList(file, spans[1][0], spans[1][1], t, op)
	return true
}

// rewriteInfoList edits the documentation pairs of an info/2 directive.
// argnames and arguments lists track the arity one entry per argument;
// examples hold real calls and follow the call rewrite rules. When the
// target had no arguments and no name list exists yet, an addition
// synthesizes an argnames entry.
func (s *Snapshot) rewriteInfoList(file string, lo, hi int, t *Target, op *Op) {
	text := s.Text(file)
	if lo >= hi || text[lo] != '[' {
		return
	}
	close := logtalk.MatchDelim(text, lo)
	if close < 0 || close >= hi {
		return
	}
	entries := logtalk.SplitArgSpans(text, lo, close)
	named := false
	for _, e := range entries {
		key, vlo, vhi, ok := infoPair(text, e[0], e[1])
		if !ok {
			continue
		}
		switch key {
		case "argnames":
			named = true
			s.editInfoValueList(file, vlo, vhi, op, quoteAtom(op.Name), t.Ind.Arity)
		case "arguments":
			named = true
			s.editInfoValueList(file, vlo, vhi, op, quoteAtom(op.Name)+"-''", t.Ind.Arity)
		case "examples":
			s.rewriteOccurrencesIn(file, vlo, vhi, t.Ind.Name, t.Ind.Arity, op, op.Name, nil)
		}
	}
	if !named && op.Kind == OpAdd && t.Ind.Arity == 0 {
		s.insertListEntry(file, lo, close, entries, len(entries)+1, "argnames is ["+quoteAtom(op.Name)+"]")
	}
}

// infoPair splits a "key is Value" entry, returning the key and the
// value's span.
func infoPair(text string, lo, hi int) (key string, vlo, vhi int, ok bool) {
	start, name := logtalk.NextAtom(text, lo, hi)
	if start != lo || name == "" {
		return "", 0, 0, false
	}
	i := start + len(name)
	for i < hi && isLayoutByte(text[i]) {
		i++
	}
	if i+2 >= hi || text[i] != 'i' || text[i+1] != 's' || !isLayoutByte(text[i+2]) {
		return "", 0, 0, false
	}
	i += 2
	for i < hi && isLayoutByte(text[i]) {
		i++
	}
	return name, i, hi, true
}

// editInfoValueList applies op to a bracketed value list when its entry
// count equals wantLen.
func (s *Snapshot) editInfoValueList(file string, lo, hi int, op *Op, value string, wantLen int) {
	text := s.Text(file)
	if lo >= hi || text[lo] != '[' {
		return
	}
	close := logtalk.MatchDelim(text, lo)
	if close < 0 || close >= hi {
		return
	}
	s.editEntryList(file, lo, close, op, value, wantLen)
}

// scanSiblings walks the directives after offset from, rewriting each
// one that mentions the target. The walk stops at the next scope
// directive, at the first directive that does not mention the target,
// and at anything that is not a recognized directive. Directives whose
// start is already in done were rewritten at their own location and
// are skipped but do not stop the walk.
func (s *Snapshot) scanSiblings(file string, from int, t *Target, op *Op, done *spanSet) {
	text := s.Text(file)
	for i := from; ; {
		j := logtalk.NextTermStart(text, i)
		if j < 0 {
			return
		}
		d, ok := logtalk.ParseDirectiveAt(text, j)
		if !ok || d.Kind == logtalk.DirScope {
			return
		}
		if !done.add(d.Start) {
			i = d.End
			continue
		}
		if !s.rewriteDirective(file, &d, t, op) {
			return
		}
		i = d.End
	}
}

// A spanSet records term starts that have already been rewritten, so a
// term reached both by a collected location and by the sibling scan is
// edited once.
type spanSet struct {
	m map[int]bool
}

func newSpanSet() *spanSet { return &spanSet{m: make(map[int]bool)} }

// add records start and reports whether it was new.
func (ss *spanSet) add(start int) bool {
	if ss.m[start] {
		return false
	}
	ss.m[start] = true
	return true
}

func isLayoutByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// quoteAtom wraps a name in single quotes for use in documentation
// lists. Names reaching here match the validated variable or parameter
// patterns, which need no escaping.
func quoteAtom(s string) string { return "'" + s + "'" }

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"lgtrf/logtalk"
)

// headMatches reports whether a clause head defines the target: same
// name, same argument count, and a grammar-rule neck exactly when the
// target is a non-terminal.
func headMatches(h logtalk.ClauseHead, t *Target) bool {
	return h.Name == t.Ind.Name && h.Arity == t.Ind.Arity &&
		h.IsNonTerminal() == (t.Ind.Kind == logtalk.NonTerminal)
}

// rewriteClause rewrites one clause or grammar rule. The head is
// edited only on a full headMatches match; every other occurrence in
// the term is edited on a name and argument count match alone. A head
// whose name matches but whose kind or count does not is excluded from
// the body scan, so a grammar rule for digits//1 is not treated as a
// call when digits/1 is being changed.
func (s *Snapshot) rewriteClause(file string, term logtalk.Term, t *Target, op *Op, value string) bool {
	text := s.Text(file)
	matched := false
	var skip map[int]bool
	if h, ok := logtalk.ParseClauseAt(text, term.Start); ok && h.Name == t.Ind.Name {
		skip = map[int]bool{h.Start: true}
		if headMatches(h, t) {
			matched = s.rewriteOccurrence(file, h.Start, h.Name, t.Ind.Arity, op, value)
		}
	}
	n := s.rewriteOccurrencesIn(file, term.Start, term.End, t.Ind.Name, t.Ind.Arity, op, value, skip)
	return matched || n > 0
}

// rewriteClauseRun rewrites the clause at terms[idx] and then extends
// through the consecutive clauses with the same head, so recursive
// calls in the later clauses of a block are reached even when only the
// block's first line was reported.
func (s *Snapshot) rewriteClauseRun(file string, terms []logtalk.Term, idx int, t *Target, op *Op, value string, done *spanSet) {
	text := s.Text(file)
	for k := idx; k < len(terms); k++ {
		term := terms[k]
		if term.Directive {
			return
		}
		if k > idx {
			h, ok := logtalk.ParseClauseAt(text, term.Start)
			if !ok || !headMatches(h, t) {
				return
			}
		}
		if done.add(term.Start) {
			s.rewriteClause(file, term, t, op, value)
		}
	}
}

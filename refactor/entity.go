// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"fmt"

	"lgtrf/logtalk"
)

// AddParameter inserts a fresh parameter named name, an _Upper_
// variable, at 1-based position pos of the parametric object or
// category called entity. A non-parametric entity is promoted to a
// parametric one.
func (s *Snapshot) AddParameter(ctx context.Context, entity, name string, pos int) {
	s.refactorEntity(ctx, entity, &Op{Kind: OpAdd, Pos: pos, Name: name})
}

// RemoveParameter deletes the parameter at 1-based position pos of the
// parametric object or category called entity.
func (s *Snapshot) RemoveParameter(ctx context.Context, entity string, pos int) {
	s.refactorEntity(ctx, entity, &Op{Kind: OpRemove, Pos: pos})
}

// ReorderParameters permutes the parameters of the parametric object
// or category called entity. perm lists, for each new position, the
// old 1-based position whose parameter it receives.
func (s *Snapshot) ReorderParameters(ctx context.Context, entity string, perm []int) {
	s.refactorEntity(ctx, entity, &Op{Kind: OpReorder, Perm: perm})
}

// refactorEntity runs one parameter operation: find the entity, edit
// the identifier in its opening directive, edit the parnames and
// parameters entries of its info/1 directive, then rewrite every
// reference to the entity name across the workspace. References are
// arity-exact like predicate calls: a mention whose parameter count
// differs from the entity's is left alone.
func (s *Snapshot) refactorEntity(ctx context.Context, entity string, op *Op) {
	defer s.Errors.flushOnPanic(s.r.Stderr)

	if !logtalk.IsAtomName(entity) {
		s.Errors.Add(fmt.Errorf("invalid entity name %q", entity))
		return
	}
	decl, err := s.index.FindEntity(ctx, entity)
	if err != nil {
		s.ErrorAt(logtalk.Position{}, "entity lookup for %s failed: %v", entity, err)
		return
	}
	if decl == nil {
		s.Errors.Add(fmt.Errorf("entity %s not found in workspace", entity))
		return
	}
	if decl.Kind == logtalk.EntityProtocol {
		s.Errors.Add(fmt.Errorf("%s is a protocol; protocols take no parameters", entity))
		return
	}
	arity := len(decl.Params)
	if err := op.Check(arity); err != nil {
		s.Errors.Add(fmt.Errorf("%s: %v", entity, err))
		return
	}

	file := decl.Loc.File
	if s.files[file] == nil {
		s.ErrorAt(logtalk.Position{File: file}, "entity lookup for %s returned a file outside the workspace; aborting", entity)
		return
	}
	terms := s.Terms(file)
	idx := s.termIndexForLine(file, decl.Loc.Line)
	if idx < 0 {
		s.ErrorAt(decl.Loc.Start(), "cannot locate the opening directive of %s; aborting", entity)
		return
	}
	e, ok := logtalk.ParseEntityDirectiveAt(s.Text(file), terms[idx].Start)
	if !ok || e.Name != entity {
		s.ErrorAt(decl.Loc.Start(), "cannot parse the opening directive of %s; aborting", entity)
		return
	}
	s.rewriteOccurrence(file, e.NameStart, entity, arity, op, op.Name)
	s.scanEntityInfo(file, terms, idx, op, arity)

	// Same coarse cancellation point as predicate rewriting: after the
	// reference scan starts, the operation runs to completion.
	if err := ctx.Err(); err != nil {
		s.ErrorAt(logtalk.Position{}, "%v", err)
		return
	}
	refs, err := s.index.FindReferences(ctx, entity)
	if err != nil {
		s.ErrorAt(logtalk.Position{}, "reference lookup for %s failed: %v", entity, err)
		return
	}
	if len(refs) == 0 {
		return
	}
	byFile := s.groupLocations(refs, entity)
	if byFile == nil {
		return
	}
	for _, name := range sortedFiles(byFile) {
		done := newSpanSet()
		if name == file {
			// The identifier in the opening directive is already
			// rewritten.
			done.add(terms[idx].Start)
		}
		fterms := s.Terms(name)
		for _, loc := range byFile[name] {
			k := s.termIndexForLine(name, loc.Line)
			if k < 0 || !done.add(fterms[k].Start) {
				continue
			}
			s.rewriteOccurrencesIn(name, fterms[k].Start, fterms[k].End, entity, arity, op, op.Name, nil)
		}
	}
}

// scanEntityInfo finds the info/1 directive of the entity opened at
// terms[idx] and rewrites its parameter documentation. The scan covers
// the whole entity body: info/1 takes a single list argument, so a
// predicate info/2 directive can never be mistaken for it.
func (s *Snapshot) scanEntityInfo(file string, terms []logtalk.Term, idx int, op *Op, arity int) {
	text := s.Text(file)
	for k := idx + 1; k < len(terms); k++ {
		term := terms[k]
		if !term.Directive {
			continue
		}
		if logtalk.IsEndEntityDirective(text, term.Start) {
			return
		}
		if _, ok := logtalk.ParseEntityDirectiveAt(text, term.Start); ok {
			return
		}
		d, ok := logtalk.ParseDirectiveAt(text, term.Start)
		if !ok || d.Kind != logtalk.DirInfo {
			continue
		}
		spans := logtalk.SplitArgSpans(text, d.Open, d.Close)
		if len(spans) != 1 {
			continue
		}
		s.rewriteEntityInfoList(file, spans[0][0], spans[0][1], op, arity)
		return
	}
}

// rewriteEntityInfoList edits the parnames and parameters entries of
// an entity info/1 list. Parameter names are documented without their
// underscore decoration, so _Color_ is listed as 'Color'.
func (s *Snapshot) rewriteEntityInfoList(file string, lo, hi int, op *Op, arity int) {
	text := s.Text(file)
	if lo >= hi || text[lo] != '[' {
		return
	}
	close := logtalk.MatchDelim(text, lo)
	if close < 0 || close >= hi {
		return
	}
	entries := logtalk.SplitArgSpans(text, lo, close)
	base := logtalk.ParamBase(op.Name)
	named := false
	for _, e := range entries {
		key, vlo, vhi, ok := infoPair(text, e[0], e[1])
		if !ok {
			continue
		}
		switch key {
		case "parnames":
			named = true
			s.editInfoValueList(file, vlo, vhi, op, quoteAtom(base), arity)
		case "parameters":
			named = true
			s.editInfoValueList(file, vlo, vhi, op, quoteAtom(base)+"-''", arity)
		}
	}
	if !named && op.Kind == OpAdd && arity == 0 {
		s.insertListEntry(file, lo, close, entries, len(entries)+1, "parnames is ["+quoteAtom(base)+"]")
	}
}

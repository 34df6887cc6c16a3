// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lgtrf/logtalk"
)

// AddArgument inserts a fresh argument named name at 1-based position
// pos of the predicate or non-terminal identified by target. target is
// an explicit indicator (name/arity or name//arity) or a
// file:line[:col] address of an occurrence.
func (s *Snapshot) AddArgument(ctx context.Context, target, name string, pos int) {
	s.refactorIndicator(ctx, target, &Op{Kind: OpAdd, Pos: pos, Name: name})
}

// RemoveArgument deletes the argument at 1-based position pos of the
// predicate or non-terminal identified by target.
func (s *Snapshot) RemoveArgument(ctx context.Context, target string, pos int) {
	s.refactorIndicator(ctx, target, &Op{Kind: OpRemove, Pos: pos})
}

// ReorderArguments permutes the arguments of the predicate or
// non-terminal identified by target. perm lists, for each new
// position, the old 1-based position whose argument it receives.
func (s *Snapshot) ReorderArguments(ctx context.Context, target string, perm []int) {
	s.refactorIndicator(ctx, target, &Op{Kind: OpReorder, Perm: perm})
}

// refactorIndicator runs one argument operation end to end: resolve
// the target, validate the operation against its arity, collect every
// known location, and rewrite file by file. All rewriting reads the
// original snapshot text, so no sub-rewrite observes another's output.
func (s *Snapshot) refactorIndicator(ctx context.Context, target string, op *Op) {
	defer s.Errors.flushOnPanic(s.r.Stderr)

	t, err := s.resolveTarget(ctx, target)
	if err != nil {
		s.Errors.Add(err)
		return
	}
	if err := op.Check(t.Ind.Arity); err != nil {
		s.Errors.Add(fmt.Errorf("%v: %v", t.Ind, err))
		return
	}
	t.New = t.Ind.WithArity(op.NewArity(t.Ind.Arity))

	byFile := s.collect(ctx, t.Decl, t.Ind)
	if byFile == nil {
		return
	}
	s.r.Log.Debug("rewriting indicator",
		zap.Stringer("target", t.Ind),
		zap.Stringer("op", op),
		zap.Int("files", len(byFile)))
	for _, file := range sortedFiles(byFile) {
		s.rewriteFileLocations(file, byFile[file], t, op)
	}
}

// rewriteFileLocations dispatches each collected location in one file
// to the directive or clause rewriter. Locations resolving to the same
// term are rewritten once. After the declaring scope directive, the
// sibling directives that follow it are rewritten as well, since mode
// and info blocks rarely appear in reference listings.
func (s *Snapshot) rewriteFileLocations(file string, locs []logtalk.Location, t *Target, op *Op) {
	text := s.Text(file)
	terms := s.Terms(file)
	done := newSpanSet()
	for _, loc := range locs {
		idx := s.termIndexForLine(file, loc.Line)
		if idx < 0 {
			continue
		}
		term := terms[idx]
		if !term.Directive {
			s.rewriteClauseRun(file, terms, idx, t, op, op.Name, done)
			continue
		}
		d, ok := logtalk.ParseDirectiveAt(text, term.Start)
		if !ok {
			// Not a directive kind this tool rewrites.
			continue
		}
		if !done.add(d.Start) {
			continue
		}
		if s.rewriteDirective(file, &d, t, op) &&
			(d.Kind == logtalk.DirScope || isDeclLocation(t, loc)) {
			s.scanSiblings(file, d.End, t, op, done)
		}
	}
}

func isDeclLocation(t *Target, loc logtalk.Location) bool {
	return t.Decl != nil && t.Decl.File == loc.File && t.Decl.Line == loc.Line
}

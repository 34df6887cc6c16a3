// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"lgtrf/logtalk"
)

// A Target is a resolved refactoring target: the indicator as it is
// now, the indicator after the operation, and the location of its
// declaring scope directive if one exists.
type Target struct {
	Ind  logtalk.Indicator
	New  logtalk.Indicator
	Decl *logtalk.Location
}

// resolveTarget turns a target argument into a Target. The argument is
// either an indicator ("area/2", "digits//1") or a source address
// ("src/shapes.lgt:12" or "src/shapes.lgt:12:9") naming a position on
// or in a term mentioning the target.
func (s *Snapshot) resolveTarget(ctx context.Context, arg string) (*Target, error) {
	if ind, err := logtalk.ParseIndicator(arg); err == nil {
		return s.finishTarget(ctx, ind, true)
	}
	if file, line, col, ok := parseAddress(arg); ok {
		return s.resolveAt(ctx, file, line, col)
	}
	return nil, fmt.Errorf("%w: target %q is neither name/arity nor file:line[:col]", ErrUnresolvedIndicator, arg)
}

// parseAddress splits "file:line" or "file:line:col" addresses.
func parseAddress(arg string) (file string, line, col int, ok bool) {
	i := strings.LastIndexByte(arg, ':')
	if i < 0 {
		return "", 0, 0, false
	}
	n1, err := strconv.Atoi(arg[i+1:])
	if err != nil || n1 < 1 {
		return "", 0, 0, false
	}
	rest := arg[:i]
	if j := strings.LastIndexByte(rest, ':'); j >= 0 {
		if n2, err := strconv.Atoi(rest[j+1:]); err == nil && n2 >= 1 {
			return rest[:j], n2, n1, true
		}
	}
	return rest, n1, 0, true
}

// resolveAt extracts the target at a source position. An explicit
// indicator literal under the cursor wins; otherwise the callable or
// bare atom there is taken, with its kind guessed from the immediate
// call syntax and overridden by a declaration when one exists.
func (s *Snapshot) resolveAt(ctx context.Context, file string, line, col int) (*Target, error) {
	file = path.Clean(filepath.ToSlash(file))
	if s.files[file] == nil {
		return nil, fmt.Errorf("%w: no workspace file %q", ErrUnresolvedIndicator, file)
	}
	text := s.Text(file)
	lineOff := logtalk.LineOffset(text, line)
	if lineOff < 0 {
		return nil, fmt.Errorf("%w: %s has no line %d", ErrUnresolvedIndicator, file, line)
	}
	lineEnd := logtalk.LineEnd(text, lineOff)
	off := lineOff
	if col > 0 {
		off = lineOff + col - 1
		if off > lineEnd {
			off = lineEnd
		}
	}

	// An indicator literal spells out name, arity, and kind.
	for from := lineOff; ; {
		lit, ok := logtalk.FindIndicatorLiteral(text, from, lineEnd)
		if !ok || lit.Start > off && col > 0 {
			break
		}
		if col == 0 || (lit.Start <= off && off < lit.End) {
			return s.finishTarget(ctx, lit.Ind, true)
		}
		from = lit.End
	}

	// A callable or bare atom: at the cursor if a column was given,
	// else the first on the line.
	var start int
	var name string
	if col > 0 {
		start, name = logtalk.AtomAt(text, off)
		if name != "" && logtalk.InOpaque(text, 0, start) {
			name = ""
		}
	} else {
		start, name = logtalk.NextAtom(text, lineOff, lineEnd)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: no indicator at %s:%d:%d", ErrUnresolvedIndicator, file, line, col)
	}

	ind := logtalk.Indicator{Name: name, Kind: logtalk.Predicate}
	end := start + len(name)
	if end < len(text) && text[end] == '(' {
		if close := logtalk.MatchDelim(text, end); close >= 0 {
			ind.Arity = logtalk.CountArgs(text, end, close)
		}
	}

	// Inside a grammar rule, calls outside {} goals are non-terminals.
	if t, ok := logtalk.TermAt(s.Terms(file), start); ok && !t.Directive {
		if h, okc := logtalk.ParseClauseAt(text, t.Start); okc && h.IsNonTerminal() {
			if logtalk.BraceDepth(text, t.Start, start) == 0 {
				ind.Kind = logtalk.NonTerminal
			}
		}
	}

	return s.finishTarget(ctx, ind, false)
}

// finishTarget applies the declared-kind precedence rule: a declaration
// for the indicator confirms it; with a guessed kind, a declaration for
// the other kind overrides the guess. A failed lookup aborts rather
// than guessing, since rewriting the wrong namespace touches every
// matched file.
func (s *Snapshot) finishTarget(ctx context.Context, ind logtalk.Indicator, explicit bool) (*Target, error) {
	if s.index == nil {
		return &Target{Ind: ind}, nil
	}
	loc, ok, err := s.index.FindDeclaration(ctx, ind)
	if err != nil {
		return nil, fmt.Errorf("%w: declaration lookup for %v: %v", ErrKindLookup, ind, err)
	}
	if ok {
		return &Target{Ind: ind, Decl: &loc}, nil
	}
	if explicit {
		return &Target{Ind: ind}, nil
	}

	other := ind.WithKind(logtalk.NonTerminal)
	if ind.Kind == logtalk.NonTerminal {
		other = ind.WithKind(logtalk.Predicate)
	}
	loc2, ok2, err := s.index.FindDeclaration(ctx, other)
	if err != nil {
		return nil, fmt.Errorf("%w: declaration lookup for %v: %v", ErrKindLookup, other, err)
	}
	if ok2 {
		s.r.Log.Debug("declared kind overrides syntactic guess",
			zap.String("guessed", ind.String()),
			zap.String("declared", other.String()))
		return &Target{Ind: other, Decl: &loc2}, nil
	}
	return &Target{Ind: ind}, nil
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logtalk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectiveAt(t *testing.T) {
	tests := []struct {
		text    string
		kind    DirectiveKind
		functor string
		args    string
	}{
		{":- public(area/2).", DirScope, "public", "area/2"},
		{":- protected([foo/1, bar//2]).", DirScope, "protected", "[foo/1, bar//2]"},
		{":- private(counter_/1).", DirScope, "private", "counter_/1"},
		{":- mode(area(+atom, -float), one).", DirMode, "mode", "area(+atom, -float), one"},
		{":- info(area/2, [comment is 'Computes.']).", DirInfo, "info", "area/2, [comment is 'Computes.']"},
		{":- meta_predicate(map(2, *, *)).", DirMetaPredicate, "meta_predicate", "map(2, *, *)"},
		{":- meta_non_terminal(seq(1)).", DirMetaNonTerminal, "meta_non_terminal", "seq(1)"},
		{":- dynamic(count/1).", DirDynamic, "dynamic", "count/1"},
		{":- discontiguous(area/2).", DirDiscontiguous, "discontiguous", "area/2"},
		{":- multifile(user:area/2).", DirMultifile, "multifile", "user:area/2"},
		{":- synchronized(log/1).", DirSynchronized, "synchronized", "log/1"},
		{":- coinductive(stream/1).", DirCoinductive, "coinductive", "stream/1"},
		{":- uses(list, [append/3, member/2]).", DirUses, "uses", "list, [append/3, member/2]"},
		{":-public(area/2).", DirScope, "public", "area/2"}, // no space after :-
	}
	for _, tt := range tests {
		d, ok := ParseDirectiveAt(tt.text, 0)
		require.True(t, ok, "ParseDirectiveAt(%q)", tt.text)
		assert.Equal(t, tt.kind, d.Kind)
		assert.Equal(t, tt.functor, d.Functor)
		assert.Equal(t, tt.args, tt.text[d.Open+1:d.Close])
		assert.Equal(t, len(tt.text), d.End)
	}
}

func TestParseDirectiveAtRejects(t *testing.T) {
	for _, text := range []string{
		"foo(X).",                    // not a directive
		":- initialization(main).",   // not in the recognized set
		":- dynamic foo/2.",          // operator form, no parentheses
		":- object(point).",          // entity, not predicate-related
		":- ",                        //
		":- public",                  // no argument list
	} {
		_, ok := ParseDirectiveAt(text, 0)
		assert.False(t, ok, "ParseDirectiveAt(%q)", text)
	}
}

func TestParseDirectiveMultiline(t *testing.T) {
	text := ":- info(area/2, [\n\tcomment is 'Area of a shape.'\n]).\nnext."
	d, ok := ParseDirectiveAt(text, 0)
	require.True(t, ok)
	assert.Equal(t, DirInfo, d.Kind)
	assert.Equal(t, strings.Index(text, "\nnext."), d.End)
	args := SplitArgs(text, d.Open, d.Close)
	require.Len(t, args, 2)
	assert.Equal(t, "area/2", args[0])
}

func TestParseEntityDirectiveAt(t *testing.T) {
	text := ":- object(point(_X_, _Y_),\n\timplements(pointp))."
	e, ok := ParseEntityDirectiveAt(text, 0)
	require.True(t, ok)
	assert.Equal(t, EntityObject, e.Kind)
	assert.Equal(t, "point", e.Name)
	assert.Equal(t, strings.Index(text, "point("), e.NameStart)
	assert.Equal(t, []string{"_X_", "_Y_"}, e.Params(text))
	assert.Equal(t, len(text), e.End)
}

func TestParseEntityDirectiveNonParametric(t *testing.T) {
	text := ":- category(logging)."
	e, ok := ParseEntityDirectiveAt(text, 0)
	require.True(t, ok)
	assert.Equal(t, EntityCategory, e.Kind)
	assert.Equal(t, "logging", e.Name)
	assert.Equal(t, -1, e.ParamsOpen)
	assert.Nil(t, e.Params(text))
}

func TestParseEntityDirectiveProtocol(t *testing.T) {
	text := ":- protocol(shapep, extends(basep))."
	e, ok := ParseEntityDirectiveAt(text, 0)
	require.True(t, ok)
	assert.Equal(t, EntityProtocol, e.Kind)
	assert.Equal(t, "shapep", e.Name)
}

func TestIsEndEntityDirective(t *testing.T) {
	assert.True(t, IsEndEntityDirective(":- end_object.", 0))
	assert.True(t, IsEndEntityDirective(":- end_category.", 0))
	assert.False(t, IsEndEntityDirective(":- object(x).", 0))
	assert.False(t, IsEndEntityDirective("end_object.", 0))
}

func TestParseClauseAt(t *testing.T) {
	tests := []struct {
		text  string
		name  string
		arity int
		neck  string
	}{
		{"area(S, A) :-\n\tcompute(S, A).", "area", 2, ":-"},
		{"digits([D|T]) -->\n\tdigit(D).", "digits", 1, "-->"},
		{"area(circle, 3.14).", "area", 2, ""},
		{"init :- start.", "init", 0, ":-"},
		{"halt_now.", "halt_now", 0, ""},
		{"empty --> [].", "empty", 0, "-->"},
	}
	for _, tt := range tests {
		h, ok := ParseClauseAt(tt.text, 0)
		require.True(t, ok, "ParseClauseAt(%q)", tt.text)
		assert.Equal(t, tt.name, h.Name)
		assert.Equal(t, tt.arity, h.Arity)
		assert.Equal(t, tt.neck, h.Neck)
	}
}

func TestParseClauseAtRejects(t *testing.T) {
	for _, text := range []string{
		"'quoted head'(X).", // quoted heads not recognized
		"X = Y.",            // variable start
		"foo = bar.",        // operator-headed clause
		":- public(a/1).",   // directive
		"123.",              //
	} {
		_, ok := ParseClauseAt(text, 0)
		assert.False(t, ok, "ParseClauseAt(%q)", text)
	}
}

func TestBraceDepth(t *testing.T) {
	text := "digits([D|T]) --> digit(D), { code(D, C) }, digits(T)."
	assert.Equal(t, 0, BraceDepth(text, 0, strings.Index(text, "digit(")))
	assert.Equal(t, 1, BraceDepth(text, 0, strings.Index(text, "code")))
	assert.Equal(t, 0, BraceDepth(text, 0, strings.Index(text, "digits(T)")))
}

func TestAtomAt(t *testing.T) {
	text := "\tarea(S, A) :- compute(S, A)."
	off := strings.Index(text, "compute") + 3
	start, name := AtomAt(text, off)
	assert.Equal(t, strings.Index(text, "compute"), start)
	assert.Equal(t, "compute", name)

	_, name = AtomAt(text, strings.Index(text, "S"))
	assert.Equal(t, "", name) // variable

	_, name = AtomAt(text, strings.Index(text, "("))
	assert.Equal(t, "", name) // delimiter
}

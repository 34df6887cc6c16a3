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

func TestMatchDelim(t *testing.T) {
	tests := []struct {
		text string
		open int
		want int
	}{
		{"()", 0, 1},
		{"(a, b)", 0, 5},
		{"(f(g(x)), [1,2])", 0, 15},
		{"(')')", 0, 4},                  // quoted close paren
		{"(\"))\", x)", 0, 8},            // close parens in a string
		{"(% )\na)", 0, 6},               // close paren in a line comment
		{"(/* ) */ a)", 0, 10},           // close paren in a block comment
		{"(0'), a)", 0, 7},               // close paren as a character code
		{"(0'\\), a)", 0, 8},             // escaped character code 0'\)
		{"[a, (b, c)]", 0, 10},           // bracket list with nested parens
		{"(unclosed", 0, -1},             //
		{"('unclosed\n)", 0, 11},         // quote stops at newline, paren closes
		{"(a)(b)", 3, 5},                 // scan from a later delimiter
		{"{x, (y)}", 0, 7},               //
		{"(atom0'x')", 0, 9},             // 0 inside identifier is not a char code
		{"('it''s ok', ')')", 0, 16},     // doubled quote
		{"('a \\' b', ')')", 0, 14},      // escaped quote
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchDelim(tt.text, tt.open), "MatchDelim(%q, %d)", tt.text, tt.open)
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"(a, b, c)", []string{"a", "b", "c"}},
		{"(f(x, y), b)", []string{"f(x, y)", "b"}},
		{"([1, 2, 3], b)", []string{"[1, 2, 3]", "b"}},
		{"(', ', b)", []string{"', '", "b"}},
		{"((a, b))", []string{"(a, b)"}},
		{"()", nil},
		{"(   )", nil},
		{"(a)", []string{"a"}},
		{"('A'-atom, 'B'-float)", []string{"'A'-atom", "'B'-float"}},
		{"({a, b}, c)", []string{"{a, b}", "c"}},
	}
	for _, tt := range tests {
		close := MatchDelim(tt.text, 0)
		require.GreaterOrEqual(t, close, 0, "MatchDelim(%q)", tt.text)
		assert.Equal(t, tt.want, SplitArgs(tt.text, 0, close), "SplitArgs(%q)", tt.text)
	}
}

func TestSplitArgSpansTrimsComments(t *testing.T) {
	text := "[\n\t'Shape', % the shape\n\t'Area'\n]"
	close := MatchDelim(text, 0)
	require.Equal(t, len(text)-1, close)
	args := SplitArgs(text, 0, close)
	assert.Equal(t, []string{"'Shape'", "'Area'"}, args)
}

func TestSplitArgsMultiline(t *testing.T) {
	text := "(area(Shape,\n\t\tArea), one)"
	close := MatchDelim(text, 0)
	require.Equal(t, len(text)-1, close)
	args := SplitArgs(text, 0, close)
	require.Len(t, args, 2)
	assert.Equal(t, "area(Shape,\n\t\tArea)", args[0])
	assert.Equal(t, "one", args[1])
}

func TestFindAtom(t *testing.T) {
	tests := []struct {
		text string
		name string
		from int
		want int
	}{
		{"area(X, Y)", "area", 0, 0},
		{"foo, area(X)", "area", 0, 5},
		{"subarea(X), area(Y)", "area", 0, 12},     // no match inside longer identifier
		{"area_of(X), area(Y)", "area", 0, 12},     //
		{"'area'(X), area(Y)", "area", 0, 11},      // quoted atom is opaque
		{"% area\narea(X)", "area", 0, 7},          // comment skipped
		{"/* area */ area(X)", "area", 0, 11},      //
		{"\"area\" ++ area", "area", 0, 10},        //
		{"barea", "area", 0, -1},                   //
		{"area", "area", 0, 0},                     // whole text
		{"area(X), area(Y)", "area", 1, 9},         // from past the first
		{"Area, area(X)", "area", 0, 6},            // variables do not match
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FindAtom(tt.text, tt.name, tt.from), "FindAtom(%q, %q, %d)", tt.text, tt.name, tt.from)
	}
}

func TestClauseEnd(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"foo(X).\n", 7},
		{"foo(X). bar(Y).", 7},
		{"foo(3.14).", 10},                      // decimal point is not a terminator
		{"foo('.').", 9},                        // quoted dot
		{"foo(X) :- bar(X).", 17},               //
		{"foo([a|T]) :-\n\tbar(T).\n", 22},      // multi-line
		{"foo. % comment", 4},                   //
		{"foo(X)", -1},                          // no terminator
		{"foo(a). ", 7},                         //
		{"x(0'.).", 7},                          // character-code dot
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClauseEnd(tt.text, 0), "ClauseEnd(%q)", tt.text)
	}
}

func TestTerms(t *testing.T) {
	text := strings.Join([]string{
		"% a comment",
		":- object(point).",
		"",
		"\t:- public(area/2).",
		"",
		"\tarea(S, A) :-",
		"\t\tcompute(S, A).",
		"",
		":- end_object.",
		"",
	}, "\n")
	terms := Terms(text)
	require.Len(t, terms, 4)
	assert.True(t, terms[0].Directive)
	assert.True(t, terms[1].Directive)
	assert.False(t, terms[2].Directive)
	assert.True(t, terms[3].Directive)
	assert.Equal(t, ":- object(point).", text[terms[0].Start:terms[0].End])
	assert.Equal(t, "area(S, A) :-\n\t\tcompute(S, A).", text[terms[2].Start:terms[2].End])

	got, ok := TermAt(terms, terms[2].Start+5)
	require.True(t, ok)
	assert.Equal(t, terms[2], got)

	_, ok = TermAt(terms, 0) // inside the leading comment
	assert.False(t, ok)
}

func TestTermsUnterminated(t *testing.T) {
	text := "foo(X) :- bar(X)" // missing dot
	terms := Terms(text)
	require.Len(t, terms, 1)
	assert.Equal(t, len(text), terms[0].End)
}

func TestNextTermStart(t *testing.T) {
	text := "  % note\n\t/* block */  foo."
	assert.Equal(t, strings.Index(text, "foo"), NextTermStart(text, 0))
	assert.Equal(t, -1, NextTermStart("  % only a comment\n", 0))
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a(X,\n\t\tY)", "a(X, Y)"},
		{"  spread \t over ", "spread over"},
		{"'quoted  text'", "'quoted  text'"},
		{"a % gone\n b", "a b"},
		{"one", "one"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CollapseSpace(tt.in), "CollapseSpace(%q)", tt.in)
	}
}

func TestInOpaque(t *testing.T) {
	text := "foo('bar baz', X) % trailing"
	assert.True(t, InOpaque(text, 0, strings.Index(text, "baz")))
	assert.False(t, InOpaque(text, 0, strings.Index(text, "X")))
	assert.True(t, InOpaque(text, 0, strings.Index(text, "trailing")))
}

func TestLineHelpers(t *testing.T) {
	text := "one\ntwo\nthree\n"
	assert.Equal(t, 4, LineStart(text, 5))
	assert.Equal(t, 7, LineEnd(text, 5))
	assert.Equal(t, 2, LineAt(text, 5))
	assert.Equal(t, 2, ColAt(text, 5))
	assert.Equal(t, 4, LineOffset(text, 2))
	assert.Equal(t, -1, LineOffset(text, 9))
	assert.Equal(t, "\t  ", Indent("\t  x", 3))
}

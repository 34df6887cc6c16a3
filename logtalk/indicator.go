// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logtalk

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind distinguishes predicates from non-terminals. The two live in
// separate namespaces: area/2 and area//2 name unrelated things.
type Kind int

const (
	Predicate Kind = iota
	NonTerminal
)

func (k Kind) String() string {
	if k == NonTerminal {
		return "non-terminal"
	}
	return "predicate"
}

// Sep returns the indicator separator for the kind: "/" or "//".
func (k Kind) Sep() string {
	if k == NonTerminal {
		return "//"
	}
	return "/"
}

// An Indicator names a predicate or non-terminal: functor name, arity,
// and kind. For a non-terminal the arity counts grammar arguments, not
// the extra list arguments of the expanded predicate form.
type Indicator struct {
	Name  string
	Arity int
	Kind  Kind
}

func (ind Indicator) String() string {
	return ind.Name + ind.Kind.Sep() + strconv.Itoa(ind.Arity)
}

// WithArity returns a copy of ind with the given arity.
func (ind Indicator) WithArity(n int) Indicator {
	ind.Arity = n
	return ind
}

// WithKind returns a copy of ind with the given kind.
func (ind Indicator) WithKind(k Kind) Indicator {
	ind.Kind = k
	return ind
}

// ParseIndicator parses "name/arity" or "name//arity". The name must be
// an unquoted atom: rewriting matches names textually, so quoted and
// operator atoms are out of reach.
func ParseIndicator(s string) (Indicator, error) {
	ind := Indicator{Kind: Predicate}
	name, arity, ok := strings.Cut(s, "/")
	if !ok {
		return ind, fmt.Errorf("not an indicator (missing /): %q", s)
	}
	if rest, isNT := strings.CutPrefix(arity, "/"); isNT {
		ind.Kind = NonTerminal
		arity = rest
	}
	if !IsAtomName(name) {
		return ind, fmt.Errorf("name %q is not an unquoted atom", name)
	}
	n, err := strconv.Atoi(arity)
	if err != nil || n < 0 {
		return ind, fmt.Errorf("bad arity %q in %q", arity, s)
	}
	ind.Name = name
	ind.Arity = n
	return ind, nil
}

var (
	atomNameRE  = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)
	varNameRE   = regexp.MustCompile(`^[A-Z_][a-zA-Z0-9_]*$`)
	paramNameRE = regexp.MustCompile(`^_[A-Z][a-zA-Z0-9]*_$`)
)

// IsAtomName reports whether s is an unquoted atom name.
func IsAtomName(s string) bool { return atomNameRE.MatchString(s) }

// IsVarName reports whether s is a variable name, usable as a new
// argument in clause heads and calls.
func IsVarName(s string) bool { return varNameRE.MatchString(s) }

// IsParamName reports whether s follows the parameter variable
// convention for parametric entities: an underscore-wrapped name
// such as _Width_.
func IsParamName(s string) bool { return paramNameRE.MatchString(s) }

// ParamBase returns the bare name inside a parameter variable:
// ParamBase("_Width_") is "Width". Non-parameter names pass through.
func ParamBase(s string) string {
	if IsParamName(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// An IndicatorLiteral is one textual occurrence of a name/arity or
// name//arity term. ArityStart marks the arity digits within
// [Start, End) so a rewrite can replace just the arity.
type IndicatorLiteral struct {
	Ind        Indicator
	Start      int
	End        int
	ArityStart int
}

// FindIndicatorLiteral returns the next indicator literal at or after
// from and starting before until, skipping opaque regions. Layout is
// allowed around the separator.
func FindIndicatorLiteral(text string, from, until int) (IndicatorLiteral, bool) {
	if until > len(text) {
		until = len(text)
	}
	for i := from; i < until; {
		if j := opaque(text, i); j > i {
			i = j
			continue
		}
		if !isLowerByte(text[i]) || (i > 0 && isIdentByte(text[i-1])) {
			i++
			continue
		}
		start := i
		for i < len(text) && isIdentByte(text[i]) {
			i++
		}
		j := i
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		if j >= len(text) || text[j] != '/' {
			continue
		}
		j++
		kind := Predicate
		if j < len(text) && text[j] == '/' {
			kind = NonTerminal
			j++
		}
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		ds := j
		for j < len(text) && isDigitByte(text[j]) {
			j++
		}
		if ds == j {
			continue
		}
		n, err := strconv.Atoi(text[ds:j])
		if err != nil {
			continue
		}
		return IndicatorLiteral{
			Ind:        Indicator{Name: text[start:i], Arity: n, Kind: kind},
			Start:      start,
			End:        j,
			ArityStart: ds,
		}, true
	}
	return IndicatorLiteral{}, false
}

// NextAtom returns the offset and text of the next unquoted atom at or
// after from and starting before until, skipping opaque regions.
func NextAtom(text string, from, until int) (int, string) {
	if until > len(text) {
		until = len(text)
	}
	for i := from; i < until; {
		if j := opaque(text, i); j > i {
			i = j
			continue
		}
		if isLowerByte(text[i]) && (i == 0 || !isIdentByte(text[i-1])) {
			start := i
			for i < len(text) && isIdentByte(text[i]) {
				i++
			}
			return start, text[start:i]
		}
		i++
	}
	return -1, ""
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logtalk

// DirectiveKind classifies the predicate-related directives the rewriter
// understands. Anything else is left untouched.
type DirectiveKind int

const (
	DirNone DirectiveKind = iota
	DirScope
	DirMode
	DirInfo
	DirMetaPredicate
	DirMetaNonTerminal
	DirSynchronized
	DirCoinductive
	DirDynamic
	DirDiscontiguous
	DirMultifile
	DirUses
)

var directiveKinds = map[string]DirectiveKind{
	"public":            DirScope,
	"protected":         DirScope,
	"private":           DirScope,
	"mode":              DirMode,
	"info":              DirInfo,
	"meta_predicate":    DirMetaPredicate,
	"meta_non_terminal": DirMetaNonTerminal,
	"synchronized":      DirSynchronized,
	"coinductive":       DirCoinductive,
	"dynamic":           DirDynamic,
	"discontiguous":     DirDiscontiguous,
	"multifile":         DirMultifile,
	"uses":              DirUses,
}

func (k DirectiveKind) String() string {
	switch k {
	case DirScope:
		return "scope"
	case DirMode:
		return "mode"
	case DirInfo:
		return "info"
	case DirMetaPredicate:
		return "meta_predicate"
	case DirMetaNonTerminal:
		return "meta_non_terminal"
	case DirSynchronized:
		return "synchronized"
	case DirCoinductive:
		return "coinductive"
	case DirDynamic:
		return "dynamic"
	case DirDiscontiguous:
		return "discontiguous"
	case DirMultifile:
		return "multifile"
	case DirUses:
		return "uses"
	}
	return "none"
}

// A Directive is one recognized predicate-related directive. Offsets
// index the file text: Start is the ':-', Open and Close delimit the
// argument list, End is just past the terminating '.'.
type Directive struct {
	Kind    DirectiveKind
	Functor string
	Start   int
	Open    int
	Close   int
	End     int
}

// EntityKind classifies entity-opening directives.
type EntityKind int

const (
	EntityNone EntityKind = iota
	EntityObject
	EntityProtocol
	EntityCategory
)

var entityKinds = map[string]EntityKind{
	"object":   EntityObject,
	"protocol": EntityProtocol,
	"category": EntityCategory,
}

func (k EntityKind) String() string {
	switch k {
	case EntityObject:
		return "object"
	case EntityProtocol:
		return "protocol"
	case EntityCategory:
		return "category"
	}
	return "none"
}

// An EntityDirective is an entity-opening directive such as
// ":- object(point(_X_, _Y_), implements(pointp))". The identifier is
// the first top-level argument; for a parametric entity ParamsOpen and
// ParamsClose delimit its parameter list, otherwise both are -1.
type EntityDirective struct {
	Kind  EntityKind
	Start int
	Open  int
	Close int
	End   int

	Name        string
	NameStart   int
	ParamsOpen  int
	ParamsClose int
}

// Params returns the parameter texts of the identifier, nil for a
// non-parametric entity.
func (e *EntityDirective) Params(text string) []string {
	if e.ParamsOpen < 0 {
		return nil
	}
	return SplitArgs(text, e.ParamsOpen, e.ParamsClose)
}

// An EntityDecl summarizes an entity-opening directive for lookup:
// its kind, name, parameters, and source extent.
type EntityDecl struct {
	Kind   EntityKind
	Name   string
	Params []string
	Loc    Location
}

// directiveHead matches ":- functor(" at the start of the term at off
// and returns the functor and the offset of its '('.
func directiveHead(text string, off int) (functor string, open int, ok bool) {
	i := off
	if i+2 > len(text) || text[i:i+2] != ":-" {
		return "", 0, false
	}
	i += 2
	for i < len(text) && isSpaceByte(text[i]) {
		i++
	}
	start := i
	for i < len(text) && isIdentByte(text[i]) {
		i++
	}
	if start == i || !isLowerByte(text[start]) {
		return "", 0, false
	}
	if i >= len(text) || text[i] != '(' {
		return "", 0, false
	}
	return text[start:i], i, true
}

// ParseDirectiveAt recognizes a predicate-related directive whose ':-'
// is at off. Operator-form directives without parentheses and directives
// outside the known set are not recognized.
func ParseDirectiveAt(text string, off int) (Directive, bool) {
	functor, open, ok := directiveHead(text, off)
	if !ok {
		return Directive{}, false
	}
	kind, known := directiveKinds[functor]
	if !known {
		return Directive{}, false
	}
	close := MatchDelim(text, open)
	if close < 0 {
		return Directive{}, false
	}
	end := ClauseEnd(text, close)
	if end < 0 {
		end = len(text)
	}
	return Directive{Kind: kind, Functor: functor, Start: off, Open: open, Close: close, End: end}, true
}

// ParseEntityDirectiveAt recognizes an entity-opening directive whose
// ':-' is at off.
func ParseEntityDirectiveAt(text string, off int) (EntityDirective, bool) {
	functor, open, ok := directiveHead(text, off)
	if !ok {
		return EntityDirective{}, false
	}
	kind, known := entityKinds[functor]
	if !known {
		return EntityDirective{}, false
	}
	close := MatchDelim(text, open)
	if close < 0 {
		return EntityDirective{}, false
	}
	end := ClauseEnd(text, close)
	if end < 0 {
		end = len(text)
	}
	e := EntityDirective{
		Kind:        kind,
		Start:       off,
		Open:        open,
		Close:       close,
		End:         end,
		ParamsOpen:  -1,
		ParamsClose: -1,
	}
	spans := SplitArgSpans(text, open, close)
	if len(spans) == 0 {
		return EntityDirective{}, false
	}
	id := spans[0]
	i := id[0]
	for i < id[1] && isIdentByte(text[i]) {
		i++
	}
	if i == id[0] || !isLowerByte(text[id[0]]) {
		return EntityDirective{}, false
	}
	e.Name = text[id[0]:i]
	e.NameStart = id[0]
	if i < id[1] && text[i] == '(' {
		pc := MatchDelim(text, i)
		if pc < 0 || pc >= id[1] {
			return EntityDirective{}, false
		}
		e.ParamsOpen = i
		e.ParamsClose = pc
	}
	return e, true
}

// IsEndEntityDirective reports whether the directive at off closes an
// entity (end_object, end_protocol, or end_category).
func IsEndEntityDirective(text string, off int) bool {
	i := off
	if i+2 > len(text) || text[i:i+2] != ":-" {
		return false
	}
	i += 2
	for i < len(text) && isSpaceByte(text[i]) {
		i++
	}
	start := i
	for i < len(text) && isIdentByte(text[i]) {
		i++
	}
	switch text[start:i] {
	case "end_object", "end_protocol", "end_category":
		return true
	}
	return false
}

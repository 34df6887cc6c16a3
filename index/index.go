// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index builds the workspace symbol tables that the rewriting
// engine queries: predicate declarations, clause definitions, name
// references, and entity-opening directives. The tables are textual
// like the engine itself: references are keyed by name alone, and the
// engine re-scans every returned location before editing.
package index

import (
	"context"
	"crypto/sha256"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lgtrf/logtalk"
)

// SchemaVersion invalidates cached summaries when the summary format
// changes.
const SchemaVersion uint16 = 1

// A FileSummary records every symbol fact one source file contributes.
// Summaries are cached on disk keyed by content digest, so unchanged
// files are not rescanned across runs.
type FileSummary struct {
	Schema   uint16
	Decls    []Fact
	Defs     []Fact
	Refs     []NameFact
	Entities []EntityFact
}

// A Fact ties an indicator, in its name/arity or name//arity string
// form, to the line its term starts on.
type Fact struct {
	Ind  string
	Line int
}

// A NameFact records that the term starting on Line mentions Name,
// with any arity, anywhere outside comments and quotes.
type NameFact struct {
	Name string
	Line int
}

// An EntityFact records an entity-opening directive.
type EntityFact struct {
	Kind   uint8
	Name   string
	Params []string
	Line   int
}

// scanFile summarizes one file. Scope directives contribute
// declarations, clause heads contribute definitions, entity-opening
// directives contribute entities, and every term contributes one
// reference per distinct atom it mentions.
func scanFile(text string) *FileSummary {
	sum := &FileSummary{Schema: SchemaVersion}
	for _, term := range logtalk.Terms(text) {
		line := logtalk.LineAt(text, term.Start)
		if term.Directive {
			if e, ok := logtalk.ParseEntityDirectiveAt(text, term.Start); ok {
				sum.Entities = append(sum.Entities, EntityFact{
					Kind:   uint8(e.Kind),
					Name:   e.Name,
					Params: e.Params(text),
					Line:   line,
				})
			} else if d, ok := logtalk.ParseDirectiveAt(text, term.Start); ok && d.Kind == logtalk.DirScope {
				for i := d.Open; i < d.End; {
					lit, ok := logtalk.FindIndicatorLiteral(text, i, d.End)
					if !ok {
						break
					}
					sum.Decls = append(sum.Decls, Fact{Ind: lit.Ind.String(), Line: line})
					i = lit.End
				}
			}
		} else if h, ok := logtalk.ParseClauseAt(text, term.Start); ok {
			kind := logtalk.Predicate
			if h.IsNonTerminal() {
				kind = logtalk.NonTerminal
			}
			ind := logtalk.Indicator{Name: h.Name, Arity: h.Arity, Kind: kind}
			sum.Defs = append(sum.Defs, Fact{Ind: ind.String(), Line: line})
		}
		seen := make(map[string]bool)
		for i := term.Start; i < term.End; {
			j, name := logtalk.NextAtom(text, i, term.End)
			if j < 0 {
				break
			}
			if !seen[name] {
				seen[name] = true
				sum.Refs = append(sum.Refs, NameFact{Name: name, Line: line})
			}
			i = j + len(name)
		}
	}
	return sum
}

// A Workspace holds the assembled tables for one snapshot of the
// source tree. It is immutable once built.
type Workspace struct {
	decls    map[string]logtalk.Location
	defs     map[string][]logtalk.Location
	refs     map[string][]logtalk.Location
	entities map[string]*logtalk.EntityDecl
}

// Build scans every file and assembles the workspace tables. Files are
// scanned in parallel; a file whose content digest hits the cache is
// not rescanned. cache may be nil to disable caching. The tables are
// assembled in sorted file order, so duplicate declarations resolve
// the same way on every run.
func Build(ctx context.Context, files map[string][]byte, cache *Cache, log *zap.Logger) (*Workspace, error) {
	summaries := make(map[string]*FileSummary, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for name, data := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := Digest(sha256.Sum256(data))
			sum := new(FileSummary)
			hit, err := cache.Load(key, sum)
			if err != nil {
				log.Debug("summary cache read failed", zap.String("file", name), zap.Error(err))
				hit = false
			}
			if !hit || sum.Schema != SchemaVersion {
				sum = scanFile(string(data))
				if err := cache.Store(key, sum); err != nil {
					log.Debug("summary cache write failed", zap.String("file", name), zap.Error(err))
				}
			}
			mu.Lock()
			summaries[name] = sum
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	ws := &Workspace{
		decls:    make(map[string]logtalk.Location),
		defs:     make(map[string][]logtalk.Location),
		refs:     make(map[string][]logtalk.Location),
		entities: make(map[string]*logtalk.EntityDecl),
	}
	for _, name := range names {
		ws.add(name, summaries[name])
	}
	log.Debug("index built",
		zap.Int("files", len(files)),
		zap.Int("declarations", len(ws.decls)),
		zap.Int("entities", len(ws.entities)))
	return ws, nil
}

func (ws *Workspace) add(file string, sum *FileSummary) {
	for _, d := range sum.Decls {
		if _, ok := ws.decls[d.Ind]; !ok {
			ws.decls[d.Ind] = logtalk.Location{File: file, Line: d.Line}
		}
	}
	for _, d := range sum.Defs {
		ws.defs[d.Ind] = append(ws.defs[d.Ind], logtalk.Location{File: file, Line: d.Line})
	}
	for _, r := range sum.Refs {
		ws.refs[r.Name] = append(ws.refs[r.Name], logtalk.Location{File: file, Line: r.Line})
	}
	for _, e := range sum.Entities {
		if _, ok := ws.entities[e.Name]; !ok {
			ws.entities[e.Name] = &logtalk.EntityDecl{
				Kind:   logtalk.EntityKind(e.Kind),
				Name:   e.Name,
				Params: e.Params,
				Loc:    logtalk.Location{File: file, Line: e.Line},
			}
		}
	}
}

// FindDeclaration returns the scope directive declaring ind. When the
// workspace declares ind more than once, the first declaration in
// sorted file order wins.
func (ws *Workspace) FindDeclaration(ctx context.Context, ind logtalk.Indicator) (logtalk.Location, bool, error) {
	if err := ctx.Err(); err != nil {
		return logtalk.Location{}, false, err
	}
	loc, ok := ws.decls[ind.String()]
	return loc, ok, nil
}

// FindDefinitions returns the clause locations for ind in the file
// that declares it, or everywhere when it has no declaration.
func (ws *Workspace) FindDefinitions(ctx context.Context, ind logtalk.Indicator) ([]logtalk.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defs := ws.defs[ind.String()]
	decl, ok := ws.decls[ind.String()]
	if !ok {
		return defs, nil
	}
	var out []logtalk.Location
	for _, loc := range defs {
		if loc.File == decl.File {
			out = append(out, loc)
		}
	}
	return out, nil
}

// FindImplementations returns the clause locations for ind outside its
// declaring file: predicates declared in a protocol and implemented by
// objects land here.
func (ws *Workspace) FindImplementations(ctx context.Context, ind logtalk.Indicator) ([]logtalk.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decl, ok := ws.decls[ind.String()]
	if !ok {
		return nil, nil
	}
	var out []logtalk.Location
	for _, loc := range ws.defs[ind.String()] {
		if loc.File != decl.File {
			out = append(out, loc)
		}
	}
	return out, nil
}

// FindReferences returns the start of every term mentioning name,
// regardless of arity.
func (ws *Workspace) FindReferences(ctx context.Context, name string) ([]logtalk.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ws.refs[name], nil
}

// FindEntity returns the entity-opening directive for name, or nil.
func (ws *Workspace) FindEntity(ctx context.Context, name string) (*logtalk.EntityDecl, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ws.entities[name], nil
}

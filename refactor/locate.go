// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"lgtrf/logtalk"
)

// A SymbolIndex supplies the workspace lookups the rewriting engine
// needs. The engine never trusts the returned locations beyond the file
// and line range: every location is re-scanned textually before any
// edit, so a stale or approximate index degrades to skipped rewrites,
// not to corrupted files.
type SymbolIndex interface {
	// FindDeclaration returns the location of the scope directive
	// declaring ind, if one exists.
	FindDeclaration(ctx context.Context, ind logtalk.Indicator) (logtalk.Location, bool, error)

	// FindDefinitions returns the locations of clauses whose head
	// matches ind.
	FindDefinitions(ctx context.Context, ind logtalk.Indicator) ([]logtalk.Location, error)

	// FindImplementations returns the locations of clauses defining ind
	// in other entities, for predicates declared in one entity and
	// implemented elsewhere.
	FindImplementations(ctx context.Context, ind logtalk.Indicator) ([]logtalk.Location, error)

	// FindReferences returns the locations of terms mentioning the
	// name, regardless of arity. The caller filters by arity during the
	// textual re-scan.
	FindReferences(ctx context.Context, name string) ([]logtalk.Location, error)

	// FindEntity returns the entity-opening directive for name, or nil
	// if the workspace has no such entity.
	FindEntity(ctx context.Context, name string) (*logtalk.EntityDecl, error)
}

// collect gathers every location that may mention the target: the
// declaration, definitions, implementations, and references, merged,
// deduplicated by starting line, and grouped by file.
//
// A nil return means the operation must not proceed: either a lookup
// failed, the work was canceled, or nothing in the workspace mentions
// the target. The error list explains which.
func (s *Snapshot) collect(ctx context.Context, decl *logtalk.Location, ind logtalk.Indicator) map[string][]logtalk.Location {
	var all []logtalk.Location
	if decl != nil {
		all = append(all, *decl)
	}

	defs, err := s.index.FindDefinitions(ctx, ind)
	if err != nil {
		s.ErrorAt(logtalk.Position{}, "definition lookup for %v failed: %v", ind, err)
		return nil
	}
	all = append(all, defs...)

	impls, err := s.index.FindImplementations(ctx, ind)
	if err != nil {
		s.ErrorAt(logtalk.Position{}, "implementation lookup for %v failed: %v", ind, err)
		return nil
	}
	all = append(all, impls...)

	// Reference scanning visits every file mentioning the name; give a
	// canceled run its one chance to stop before the expensive part.
	if err := ctx.Err(); err != nil {
		s.ErrorAt(logtalk.Position{}, "%v", err)
		return nil
	}

	refs, err := s.index.FindReferences(ctx, ind.Name)
	if err != nil {
		s.ErrorAt(logtalk.Position{}, "reference lookup for %v failed: %v", ind, err)
		return nil
	}
	all = append(all, refs...)

	if len(all) == 0 {
		s.ErrorAt(logtalk.Position{}, "no occurrences of %v found in workspace", ind)
		return nil
	}
	return s.groupLocations(all, ind.String())
}

// groupLocations validates, deduplicates, and groups locations by file.
// A location in an unknown file or with a zero line is a hard error:
// it means the index and the snapshot disagree, and rewriting the rest
// could leave the workspace half-renamed.
func (s *Snapshot) groupLocations(all []logtalk.Location, what string) map[string][]logtalk.Location {
	byFile := make(map[string][]logtalk.Location)
	seen := make(map[string]map[int]bool)
	n := 0
	for _, loc := range all {
		if loc.File == "" || loc.Line == 0 {
			s.ErrorAt(logtalk.Position{File: loc.File}, "lookup for %s returned a location without a line; aborting", what)
			return nil
		}
		if s.files[loc.File] == nil {
			s.ErrorAt(logtalk.Position{File: loc.File}, "lookup for %s returned a file outside the workspace; aborting", what)
			return nil
		}
		if seen[loc.File] == nil {
			seen[loc.File] = make(map[int]bool)
		}
		if seen[loc.File][loc.Line] {
			continue
		}
		seen[loc.File][loc.Line] = true
		byFile[loc.File] = append(byFile[loc.File], loc)
		n++
	}
	if n == 0 {
		return nil
	}
	for _, locs := range byFile {
		sort.Slice(locs, func(i, j int) bool { return locs[i].Line < locs[j].Line })
	}
	s.r.Log.Debug("collected locations",
		zap.String("target", what),
		zap.Int("locations", n),
		zap.Int("files", len(byFile)))
	return byFile
}

// sortedFiles returns the keys of a location group in sorted order, so
// edits and diagnostics are deterministic.
func sortedFiles(byFile map[string][]logtalk.Location) []string {
	names := make([]string, 0, len(byFile))
	for name := range byFile {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"lgtrf/logtalk"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScanFile(t *testing.T) {
	text := `:- object(point(_X_, _Y_)).

:- public(area/2).
:- private([helper/1, digits//1]).

area(Shape, 0.0) :- helper(Shape).

digits([D]) --> [D].

:- end_object.
`
	sum := scanFile(text)
	require.Equal(t, SchemaVersion, sum.Schema)

	require.Equal(t, []EntityFact{
		{Kind: uint8(logtalk.EntityObject), Name: "point", Params: []string{"_X_", "_Y_"}, Line: 1},
	}, sum.Entities)

	require.Equal(t, []Fact{
		{Ind: "area/2", Line: 3},
		{Ind: "helper/1", Line: 4},
		{Ind: "digits//1", Line: 4},
	}, sum.Decls)

	require.Equal(t, []Fact{
		{Ind: "area/2", Line: 6},
		{Ind: "digits//1", Line: 8},
	}, sum.Defs)

	require.Equal(t, []int{3, 6}, refLines(sum, "area"))
	require.Equal(t, []int{4, 8}, refLines(sum, "digits"))
	require.Equal(t, []int{1}, refLines(sum, "point"))
}

func refLines(sum *FileSummary, name string) []int {
	var lines []int
	for _, r := range sum.Refs {
		if r.Name == name {
			lines = append(lines, r.Line)
		}
	}
	return lines
}

func TestScanFileSkipsCommentsAndQuotes(t *testing.T) {
	text := `% area(Old, New) is gone
report(X) :- write('area(1,2)'), helper(X).
`
	sum := scanFile(text)
	require.Empty(t, refLines(sum, "area"))
	require.Equal(t, []int{2}, refLines(sum, "helper"))
}

func TestBuildQueries(t *testing.T) {
	ctx := context.Background()
	files := map[string][]byte{
		"shapes.lgt": []byte(":- public(area/2).\narea(square, 4.0).\n"),
		"other.lgt":  []byte("area(circle, 3.14).\ntotal(T) :- area(square, T).\n"),
	}
	ws, err := Build(ctx, files, nil, zap.NewNop())
	require.NoError(t, err)

	area := logtalk.Indicator{Name: "area", Arity: 2}

	decl, ok, err := ws.FindDeclaration(ctx, area)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, logtalk.Location{File: "shapes.lgt", Line: 1}, decl)

	defs, err := ws.FindDefinitions(ctx, area)
	require.NoError(t, err)
	require.Equal(t, []logtalk.Location{{File: "shapes.lgt", Line: 2}}, defs)

	impls, err := ws.FindImplementations(ctx, area)
	require.NoError(t, err)
	require.Equal(t, []logtalk.Location{{File: "other.lgt", Line: 1}}, impls)

	refs, err := ws.FindReferences(ctx, "area")
	require.NoError(t, err)
	require.Equal(t, []logtalk.Location{
		{File: "other.lgt", Line: 1},
		{File: "other.lgt", Line: 2},
		{File: "shapes.lgt", Line: 1},
		{File: "shapes.lgt", Line: 2},
	}, refs)

	ent, err := ws.FindEntity(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, ent)
}

func TestBuildKindNamespaces(t *testing.T) {
	ctx := context.Background()
	files := map[string][]byte{
		"g.lgt": []byte(":- public(digits//1).\ndigits([D]) --> [D].\ndigits(none).\n"),
	}
	ws, err := Build(ctx, files, nil, zap.NewNop())
	require.NoError(t, err)

	nt := logtalk.Indicator{Name: "digits", Arity: 1, Kind: logtalk.NonTerminal}
	defs, err := ws.FindDefinitions(ctx, nt)
	require.NoError(t, err)
	require.Equal(t, []logtalk.Location{{File: "g.lgt", Line: 2}}, defs)

	pred := logtalk.Indicator{Name: "digits", Arity: 1}
	_, ok, err := ws.FindDeclaration(ctx, pred)
	require.NoError(t, err)
	require.False(t, ok, "predicate namespace must not see the non-terminal declaration")

	defs, err = ws.FindDefinitions(ctx, pred)
	require.NoError(t, err)
	require.Equal(t, []logtalk.Location{{File: "g.lgt", Line: 3}}, defs)
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, map[string][]byte{"a.lgt": []byte("a.\n")}, nil, zap.NewNop())
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("lgtrf")
	require.NoError(t, err)

	data := []byte(":- public(area/2).\n")
	key := Digest(sha256.Sum256(data))
	poisoned := &FileSummary{Schema: SchemaVersion, Decls: []Fact{{Ind: "bogus/9", Line: 7}}}
	require.NoError(t, cache.Store(key, poisoned))

	ws, err := Build(context.Background(), map[string][]byte{"a.lgt": data}, cache, zap.NewNop())
	require.NoError(t, err)

	_, ok, err := ws.FindDeclaration(context.Background(), logtalk.Indicator{Name: "bogus", Arity: 9})
	require.NoError(t, err)
	require.True(t, ok, "a summary with the current schema must be served from the cache")
}

func TestBuildRejectsStaleSchema(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("lgtrf")
	require.NoError(t, err)

	data := []byte(":- public(area/2).\n")
	key := Digest(sha256.Sum256(data))
	stale := &FileSummary{Schema: SchemaVersion - 1, Decls: []Fact{{Ind: "bogus/9", Line: 7}}}
	require.NoError(t, cache.Store(key, stale))

	ws, err := Build(context.Background(), map[string][]byte{"a.lgt": data}, cache, zap.NewNop())
	require.NoError(t, err)

	_, ok, err := ws.FindDeclaration(context.Background(), logtalk.Indicator{Name: "bogus", Arity: 9})
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = ws.FindDeclaration(context.Background(), logtalk.Indicator{Name: "area", Arity: 2})
	require.NoError(t, err)
	require.True(t, ok, "stale cache entry must trigger a rescan")

	// The rescan refreshes the cache entry.
	fresh := new(FileSummary)
	hit, err := cache.Load(key, fresh)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, SchemaVersion, fresh.Schema)
	require.Equal(t, []Fact{{Ind: "area/2", Line: 1}}, fresh.Decls)
}

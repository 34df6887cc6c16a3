// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"crypto/sha256"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("lgtrf")
	require.NoError(t, err)

	key := Digest(sha256.Sum256([]byte("content")))
	want := &FileSummary{
		Schema: SchemaVersion,
		Decls:  []Fact{{Ind: "area/2", Line: 3}},
		Defs:   []Fact{{Ind: "area/2", Line: 6}},
		Refs:   []NameFact{{Name: "area", Line: 6}},
		Entities: []EntityFact{
			{Kind: 1, Name: "point", Params: []string{"_X_", "_Y_"}, Line: 1},
		},
	}
	require.NoError(t, cache.Store(key, want))

	got := new(FileSummary)
	hit, err := cache.Load(key, got)
	require.NoError(t, err)
	require.True(t, hit)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheMiss(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("lgtrf")
	require.NoError(t, err)

	hit, err := cache.Load(Digest(sha256.Sum256([]byte("absent"))), new(FileSummary))
	require.NoError(t, err)
	require.False(t, hit)
}

func TestNilCache(t *testing.T) {
	var cache *Cache
	key := Digest(sha256.Sum256([]byte("x")))

	hit, err := cache.Load(key, new(FileSummary))
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, cache.Store(key, &FileSummary{Schema: SchemaVersion}))
}

func TestCacheOverwrite(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("lgtrf")
	require.NoError(t, err)

	key := Digest(sha256.Sum256([]byte("content")))
	require.NoError(t, cache.Store(key, &FileSummary{Schema: SchemaVersion, Decls: []Fact{{Ind: "a/1", Line: 1}}}))
	require.NoError(t, cache.Store(key, &FileSummary{Schema: SchemaVersion, Decls: []Fact{{Ind: "b/2", Line: 2}}}))

	got := new(FileSummary)
	hit, err := cache.Load(key, got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, []Fact{{Ind: "b/2", Line: 2}}, got.Decls)
}

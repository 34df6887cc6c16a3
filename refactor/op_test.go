// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpCheck(t *testing.T) {
	for _, tt := range []struct {
		name  string
		op    Op
		arity int
		ok    bool
	}{
		{"add first", Op{Kind: OpAdd, Pos: 1, Name: "X"}, 0, true},
		{"add past end", Op{Kind: OpAdd, Pos: 3, Name: "X"}, 2, true},
		{"add beyond", Op{Kind: OpAdd, Pos: 4, Name: "X"}, 2, false},
		{"add zero pos", Op{Kind: OpAdd, Pos: 0, Name: "X"}, 2, false},
		{"remove in range", Op{Kind: OpRemove, Pos: 2}, 2, true},
		{"remove from empty", Op{Kind: OpRemove, Pos: 1}, 0, false},
		{"remove beyond", Op{Kind: OpRemove, Pos: 3}, 2, false},
		{"reorder valid", Op{Kind: OpReorder, Perm: []int{3, 1, 2}}, 3, true},
		{"reorder short", Op{Kind: OpReorder, Perm: []int{1, 2}}, 3, false},
		{"reorder repeat", Op{Kind: OpReorder, Perm: []int{1, 1, 3}}, 3, false},
		{"reorder out of range", Op{Kind: OpReorder, Perm: []int{0, 1, 2}}, 3, false},
		{"reorder empty on zero arity", Op{Kind: OpReorder, Perm: nil}, 0, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Check(tt.arity)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestOpNewArity(t *testing.T) {
	require.Equal(t, 3, (&Op{Kind: OpAdd, Pos: 1}).NewArity(2))
	require.Equal(t, 1, (&Op{Kind: OpRemove, Pos: 1}).NewArity(2))
	require.Equal(t, 2, (&Op{Kind: OpReorder, Perm: []int{2, 1}}).NewArity(2))
}

func TestOpIdentity(t *testing.T) {
	require.True(t, (&Op{Kind: OpReorder, Perm: []int{1, 2, 3}}).Identity())
	require.False(t, (&Op{Kind: OpReorder, Perm: []int{2, 1, 3}}).Identity())
	require.False(t, (&Op{Kind: OpAdd, Pos: 1, Name: "X"}).Identity())
}

func TestOpString(t *testing.T) {
	require.Equal(t, "add Units at 1", (&Op{Kind: OpAdd, Pos: 1, Name: "Units"}).String())
	require.Equal(t, "remove 2", (&Op{Kind: OpRemove, Pos: 2}).String())
	require.Equal(t, "reorder [3 1 2]", (&Op{Kind: OpReorder, Perm: []int{3, 1, 2}}).String())
}

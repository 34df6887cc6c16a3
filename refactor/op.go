// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import "fmt"

// An OpKind selects the transformation applied to an argument list.
type OpKind int

const (
	OpAdd OpKind = iota
	OpRemove
	OpReorder
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	}
	return "reorder"
}

// An Op is one argument-list transformation. The same Op is applied to
// every occurrence of the target: declarations, clause heads, calls,
// documentation entries, and entity parameter lists differ only in the
// text inserted for an added position.
type Op struct {
	Kind OpKind
	Pos  int    // 1-based position, for Add and Remove
	Name string // name of the added argument or parameter, for Add
	Perm []int  // new order as old positions, for Reorder
}

// Check validates op against the target's current arity.
func (op *Op) Check(arity int) error {
	switch op.Kind {
	case OpAdd:
		if op.Pos < 1 || op.Pos > arity+1 {
			return fmt.Errorf("position %d out of range 1..%d", op.Pos, arity+1)
		}
	case OpRemove:
		if arity == 0 {
			return fmt.Errorf("cannot remove an argument: arity is 0")
		}
		if op.Pos < 1 || op.Pos > arity {
			return fmt.Errorf("position %d out of range 1..%d", op.Pos, arity)
		}
	case OpReorder:
		if len(op.Perm) != arity {
			return fmt.Errorf("permutation names %d positions, want %d", len(op.Perm), arity)
		}
		seen := make([]bool, arity)
		for _, p := range op.Perm {
			if p < 1 || p > arity || seen[p-1] {
				return fmt.Errorf("not a permutation of 1..%d", arity)
			}
			seen[p-1] = true
		}
	}
	return nil
}

// NewArity returns the arity of the target after op.
func (op *Op) NewArity(arity int) int {
	switch op.Kind {
	case OpAdd:
		return arity + 1
	case OpRemove:
		return arity - 1
	}
	return arity
}

// Identity reports whether op cannot change any occurrence: a reorder
// that keeps every position in place.
func (op *Op) Identity() bool {
	if op.Kind != OpReorder {
		return false
	}
	for i, p := range op.Perm {
		if p != i+1 {
			return false
		}
	}
	return true
}

func (op *Op) String() string {
	switch op.Kind {
	case OpAdd:
		return fmt.Sprintf("add %s at %d", op.Name, op.Pos)
	case OpRemove:
		return fmt.Sprintf("remove %d", op.Pos)
	}
	return fmt.Sprintf("reorder %v", op.Perm)
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	"lgtrf/refactor"
)

// cmdMv implements "mv target perm": permute the arguments of the
// predicate or non-terminal identified by target. perm lists, for each
// new position, the old position whose argument it receives, so
// "mv between/3 3,1,2" moves the old third argument to the front.
func cmdMv(ctx context.Context, snap *refactor.Snapshot, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return newErrUsage("mv target perm")
	}
	perm, err := parsePerm(fields[1])
	if err != nil {
		return newErrUsage("mv %s: %v", fields[0], err)
	}
	snap.ReorderArguments(ctx, fields[0], perm)
	return nil
}

// cmdMvPar implements "mvpar entity perm": permute the parameters of a
// parametric object or category.
func cmdMvPar(ctx context.Context, snap *refactor.Snapshot, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return newErrUsage("mvpar entity perm")
	}
	entity, err := parseEntity(ctx, snap, fields[0])
	if err != nil {
		return err
	}
	perm, err := parsePerm(fields[1])
	if err != nil {
		return newErrUsage("mvpar %s: %v", fields[0], err)
	}
	snap.ReorderParameters(ctx, entity, perm)
	return nil
}

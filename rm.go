// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	"lgtrf/refactor"
)

// cmdRm implements "rm target pos": remove the argument at 1-based
// position pos of the predicate or non-terminal identified by target.
func cmdRm(ctx context.Context, snap *refactor.Snapshot, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return newErrUsage("rm target pos")
	}
	pos, err := parsePos(fields[1])
	if err != nil {
		return newErrUsage("rm %s: %v", fields[0], err)
	}
	snap.RemoveArgument(ctx, fields[0], pos)
	return nil
}

// cmdRmPar implements "rmpar entity pos": remove the parameter at
// 1-based position pos of a parametric object or category.
func cmdRmPar(ctx context.Context, snap *refactor.Snapshot, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return newErrUsage("rmpar entity pos")
	}
	entity, err := parseEntity(ctx, snap, fields[0])
	if err != nil {
		return err
	}
	pos, err := parsePos(fields[1])
	if err != nil {
		return newErrUsage("rmpar %s: %v", fields[0], err)
	}
	snap.RemoveParameter(ctx, entity, pos)
	return nil
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	"lgtrf/logtalk"
	"lgtrf/refactor"
)

// cmdAdd implements "add target pos name": insert an argument named
// name at 1-based position pos of the predicate or non-terminal
// identified by target.
func cmdAdd(ctx context.Context, snap *refactor.Snapshot, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return newErrUsage("add target pos name")
	}
	pos, err := parsePos(fields[1])
	if err != nil {
		return newErrUsage("add %s: %v", fields[0], err)
	}
	name := fields[2]
	if !logtalk.IsVarName(name) {
		return newErrUsage("add %s: argument name %q is not a variable name", fields[0], name)
	}
	snap.AddArgument(ctx, fields[0], name, pos)
	return nil
}

// cmdAddPar implements "addpar entity pos _Name_": insert a parameter
// at 1-based position pos of a parametric object or category. A
// non-parametric entity is promoted.
func cmdAddPar(ctx context.Context, snap *refactor.Snapshot, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return newErrUsage("addpar entity pos _Name_")
	}
	entity, err := parseEntity(ctx, snap, fields[0])
	if err != nil {
		return err
	}
	pos, err := parsePos(fields[1])
	if err != nil {
		return newErrUsage("addpar %s: %v", fields[0], err)
	}
	name := fields[2]
	if !logtalk.IsParamName(name) {
		return newErrUsage("addpar %s: parameter name %q is not of the form _Name_", fields[0], name)
	}
	snap.AddParameter(ctx, entity, name, pos)
	return nil
}

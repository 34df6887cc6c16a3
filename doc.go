// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Lgtrf refactors the argument lists of Logtalk predicates and
// non-terminals, and the parameter lists of parametric objects and
// categories, across a whole workspace.
//
// Usage:
//
//	lgtrf [flags] 'script'
//
// Lgtrf applies a script of refactoring commands to the workspace
// containing the current directory (or the directory named with -C).
// For example, to give area/2 a leading Units argument everywhere it is
// declared, documented, defined, and called:
//
//	lgtrf 'add area/2 1 Units'
//
// By default, lgtrf writes changes back to disk. The -diff flag prints
// a unified diff of the intended changes instead, and the -edits flag
// prints each command's edits as one JSON object per line, for editors
// that want to apply them themselves.
//
// A script is a sequence of commands, one per line. Comments are
// introduced by # and extend to the end of the line. Commands may be
// broken across lines by ending all but the last with a trailing
// backslash. Each command runs against the workspace as left by the
// commands before it; nothing is written until the whole script has
// succeeded, so a failing command leaves the workspace untouched.
//
// # Targets
//
// Predicate commands name their target either as an indicator or as a
// source address. An indicator is name/arity for a predicate or
// name//arity for a non-terminal, as in area/2 or digits//1; the two
// namespaces are kept apart, so operating on digits//1 never touches a
// digits/1 predicate. A source address is file:line or file:line:col
// with 1-based line and column, naming an occurrence of the target in
// the source; lgtrf reads the indicator out of the text there. When an
// address is ambiguous between the predicate and non-terminal readings,
// a scope directive for either settles it.
//
// Entity commands name a parametric object or category by its name,
// optionally with the expected parameter count appended, as in point or
// point/2. A stated count that does not match the workspace aborts the
// command.
//
// # The add and addpar commands
//
// The add command inserts a fresh argument into the target's argument
// list at a 1-based position. The argument name must be a variable name
// and is used verbatim in clause heads and calls; mode templates
// receive ? and meta_predicate templates receive * at the new position,
// and argnames and arguments documentation entries receive the quoted
// name.
//
//	add area/2 1 Units
//	add src/scanner.lgt:12 2 Base
//
// The addpar command does the same for an entity parameter. The
// parameter name must be of the _Name_ form. Adding a parameter to a
// non-parametric entity turns its atom identifier into a compound one:
//
//	addpar point 3 _Z_
//	addpar counter/0 1 _Step_
//
// # The rm and rmpar commands
//
// The rm command removes the argument at a position, and rmpar the
// entity parameter at a position. Removing the last argument turns
// compound occurrences back into bare atoms:
//
//	rm area/3 1
//	rmpar point 3
//
// # The mv and mvpar commands
//
// The mv command permutes the target's arguments, and mvpar an entity's
// parameters. The permutation lists, for each new position, the old
// position whose argument it receives:
//
//	mv between/3 3,1,2    # between(1, 10, X) becomes between(X, 1, 10)
//	mvpar pair 2,1
//
// # What is rewritten
//
// For a predicate or non-terminal, lgtrf rewrites the scope directive
// declaring it and the dynamic, discontiguous, multifile, synchronized,
// coinductive, mode, meta_predicate, meta_non_terminal, and info
// directives mentioning it, its clause heads, and every call whose
// argument count matches. Calls are matched textually with a scanner
// that is careful about comments, quotes, and nesting, not with a
// parser: a mention of the name with a different argument count is
// left alone, as is anything inside comments or quoted atoms. uses
// lists keep an "as alias" arity in step with the original's.
//
// For an entity, lgtrf rewrites the identifier in the opening
// directive, the parnames and parameters entries of its info directive,
// and every reference to the entity with a matching parameter count,
// including message-sending targets such as point(1, 2)::move.
//
// # The workspace
//
// The workspace root is the nearest directory at or above the starting
// directory containing an lgtrf.toml manifest, or the starting
// directory itself when there is none. The manifest may restrict which
// files belong to the workspace:
//
//	required-version = "0.3.0"
//
//	[workspace]
//	extensions = [".lgt", ".logtalk"]
//	exclude = ["build", "vendor"]
//
// All fields are optional. Unknown keys are rejected.
//
// # Exit status
//
// Lgtrf exits 0 when the script ran to completion, even if it changed
// nothing; 1 when any command failed, in which case no files were
// written; and 2 when the invocation itself was malformed.
package main

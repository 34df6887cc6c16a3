// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"lgtrf/logtalk"
)

// Resolution failures that abort an operation before any location is
// rewritten. They are reported through the snapshot's error list and are
// also matchable with errors.Is.
var (
	// ErrUnresolvedIndicator reports that no predicate or non-terminal
	// indicator could be recognized at the requested target.
	ErrUnresolvedIndicator = errors.New("cannot resolve indicator")

	// ErrKindLookup reports that the declaration lookup needed to pick
	// between the predicate and non-terminal reading of a target failed.
	ErrKindLookup = errors.New("cannot determine target kind")
)

// An Error is an error at a particular source position.
type Error struct {
	Pos logtalk.Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

type errorKey struct {
	pos logtalk.Position
	msg string
}

// ErrorList is a set of Errors. It is also an error itself. The zero
// value is an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[errorKey]bool
}

// Add adds an error to l. An *Error keeps its position; an *ErrorList is
// merged; anything else is added with no position. Duplicate errors
// (same position and message) are suppressed.
func (l *ErrorList) Add(err error) {
	var e *Error

	switch err := err.(type) {
	case nil:
		return

	case *ErrorList:
		for _, e := range err.errs {
			l.Add(e)
		}
		return

	case *Error:
		e = err

	default:
		e = &Error{logtalk.Position{}, err.Error()}
	}

	k := errorKey{e.Pos, e.Msg}
	if !l.set[k] {
		if l.set == nil {
			l.set = make(map[errorKey]bool)
		}
		l.errs = append(l.errs, e)
		l.set[k] = true
	}
}

// Error sorts, deduplicates, and returns a "\n" separated list of
// formatted errors. The result does not end in "\n" because the caller
// is expected to add that.
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}

	sort.Slice(l.errs, func(i, j int) bool {
		p1, p2 := l.errs[i].Pos, l.errs[j].Pos
		if p1.File != p2.File {
			return p1.File < p2.File
		}
		if p1.Line != p2.Line {
			return p1.Line < p2.Line
		}
		return p1.Col < p2.Col
	})

	// Collapse duplicate messages that appear in many locations on the
	// assumption that the refactoring amplified some issue and the user
	// doesn't want to be flooded.
	count := make(map[string]int)
	for _, e := range l.errs {
		count[e.Msg]++
	}

	buf := new(strings.Builder)
	for _, e := range l.errs {
		msg := e.Msg
		switch {
		case count[msg] > 3:
			n := count[e.Msg]
			count[e.Msg] = -1
			msg += fmt.Sprintf(" [x %d]", n)

		case count[msg] < 0:
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}

		if e.Pos.IsValid() {
			fmt.Fprintf(buf, "%s: %s", e.Pos, msg)
		} else {
			fmt.Fprintf(buf, "%s", msg)
		}
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

func (l *ErrorList) flushOnPanic(w io.Writer) {
	if len(l.errs) == 0 {
		// If there are no errors to flush, don't even affect the panic chain.
		return
	}

	p := recover()
	if p == nil {
		return
	}
	defer panic(p)

	fmt.Fprintf(w, "%s\n", l.Error())
}

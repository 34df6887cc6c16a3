// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor rewrites predicate arguments and entity parameters
// across a Logtalk workspace.
//
// A Refactor holds the workspace configuration. A Snapshot holds the
// text of every workspace file at one point in time plus the edits
// queued against it; applying a snapshot produces a new one, so a
// script of operations is a chain of snapshots and the final diff or
// write is computed against the original files.
package refactor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// A Refactor holds the workspace being refactored.
type Refactor struct {
	Stdout   io.Writer
	Stderr   io.Writer
	ShowDiff bool
	Log      *zap.Logger

	dir  string
	root string
	cfg  *Config
}

// New returns a new Refactor for the workspace containing dir.
func New(dir string) (*Refactor, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}
	dir = filepath.Clean(dir)
	if info, err := os.Stat(dir); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	cfg, root, err := LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	r := &Refactor{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    zap.NewNop(),
		dir:    dir,
		root:   root,
		cfg:    cfg,
	}
	return r, nil
}

// Root returns the workspace root directory.
func (r *Refactor) Root() string { return r.root }

// Config returns the workspace configuration.
func (r *Refactor) Config() *Config { return r.cfg }

// Load reads every workspace source file and returns the initial
// snapshot.
func (r *Refactor) Load() (*Snapshot, error) {
	names, err := r.cfg.SourceFiles(r.root)
	if err != nil {
		return nil, err
	}
	s := &Snapshot{
		r:      r,
		files:  make(map[string]*File, len(names)),
		edits:  make(map[string]*Edit),
		Errors: &ErrorList{},
	}
	for _, name := range names {
		text, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(name)))
		if err != nil {
			return nil, err
		}
		s.files[name] = &File{Name: name, Text: text}
		s.names = append(s.names, name)
	}
	r.Log.Debug("workspace loaded",
		zap.String("root", r.root),
		zap.Int("files", len(names)))
	return s, nil
}

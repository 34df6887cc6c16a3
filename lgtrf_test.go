// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"lgtrf/refactor"
)

func TestScripts(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Log(file)
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			var wantStdout, wantStderr txtar.File
			for _, file := range ar.Files {
				if file.Name == "stdout" {
					wantStdout = file
					continue
				}
				if file.Name == "stderr" {
					wantStderr = file
					continue
				}
				targ := filepath.Join(dir, file.Name)
				if err := os.MkdirAll(filepath.Dir(targ), 0777); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(targ, file.Data, 0666); err != nil {
					t.Fatal(err)
				}
			}

			var stdout, stderr bytes.Buffer
			rf, err := refactor.New(dir)
			if err != nil {
				t.Fatal(err)
			}
			rf.Stdout = &stdout
			rf.Stderr = &stderr
			rf.ShowDiff = true
			opts := &options{dir: dir, color: "never", noCache: true}
			if err := applyScript(context.Background(), rf, nil, opts, string(ar.Comment)); err != nil {
				fmt.Fprintf(rf.Stderr, "ERROR: %v\n", err)
			}

			cmp := func(name string, have, want []byte) {
				have = trimSpace(have)
				want = trimSpace(want)
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			cmp("stderr", stderr.Bytes(), wantStderr.Data)
			cmp("stdout", stdout.Bytes(), wantStdout.Data)
		})
	}
}

func trimSpace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " ")
	}
	return bytes.Join(lines, []byte("\n"))
}

func TestPrintEdits(t *testing.T) {
	set := &refactor.EditSet{
		Files: map[string][]refactor.TextEdit{
			"a.lgt": {{Start: 13, End: 19, New: "area/3"}},
		},
	}
	var buf bytes.Buffer
	if err := printEdits(&buf, set); err != nil {
		t.Fatal(err)
	}
	want := `{"files":{"a.lgt":[{"start":13,"end":19,"new":"area/3"}]}}` + "\n"
	if buf.String() != want {
		t.Errorf("printEdits:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestTrimComments(t *testing.T) {
	var tests = []struct {
		line string
		want string
	}{
		{"add area/2 1 Units", "add area/2 1 Units"},
		{"add area/2 1 Units # widen", "add area/2 1 Units"},
		{"# nothing but comment", ""},
		{"   ", ""},
		{"add 'odd#name'/1 2 X # trailing", "add 'odd#name'/1 2 X"},
		{`add "a#b" 1 X`, `add "a#b" 1 X`},
		{`add 'it''s #1'/1 2 X`, `add 'it''s #1'/1 2 X`},
	}
	for _, tt := range tests {
		if got := trimComments(tt.line); got != tt.want {
			t.Errorf("trimComments(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestParsePerm(t *testing.T) {
	perm, err := parsePerm("3,1,2")
	if err != nil {
		t.Fatal(err)
	}
	if len(perm) != 3 || perm[0] != 3 || perm[1] != 1 || perm[2] != 2 {
		t.Errorf("parsePerm(3,1,2) = %v", perm)
	}
	if _, err := parsePerm("3,x,2"); err == nil {
		t.Error("parsePerm(3,x,2) succeeded")
	}
}

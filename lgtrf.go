// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lgtrf/index"
	"lgtrf/logtalk"
	"lgtrf/refactor"
)

func main() {
	log.SetPrefix("lgtrf: ")
	log.SetFlags(0)
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ran := false
	cmd := rootCommand(&ran)
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Print(err)
		if !ran {
			return 2
		}
		return 1
	}
	return 0
}

type options struct {
	dir     string
	diff    bool
	edits   bool
	color   string
	verbose bool
	noCache bool
}

func rootCommand(ran *bool) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "lgtrf [flags] 'script'",
		Short: "rewrite predicate arguments and entity parameters across a Logtalk workspace",
		Long: `Lgtrf applies a script of argument refactorings to the Logtalk
workspace containing the current directory and writes the modified
files back, or prints a diff with -diff. Run 'go doc lgtrf' for the
script language.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*ran = true
			return runScript(cmd.Context(), opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.dir, "dir", "C", ".", "run as if started in `dir`")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "show a unified diff instead of writing files")
	cmd.Flags().BoolVar(&opts.edits, "edits", false, "print each command's edit set as JSON instead of writing files")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "colorize diffs: auto, always, or never")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the on-disk summary cache")
	return cmd
}

var cmds = map[string]func(context.Context, *refactor.Snapshot, string) error{
	"add":    cmdAdd,
	"rm":     cmdRm,
	"mv":     cmdMv,
	"addpar": cmdAddPar,
	"rmpar":  cmdRmPar,
	"mvpar":  cmdMvPar,
}

func runScript(ctx context.Context, opts *options, script string) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rf, err := refactor.New(opts.dir)
	if err != nil {
		return err
	}
	rf.ShowDiff = opts.diff
	rf.Log = logger
	if err := checkRequiredVersion(rf.Config()); err != nil {
		return err
	}

	var cache *index.Cache
	if !opts.noCache {
		cache, err = index.OpenCache("lgtrf")
		if err != nil {
			logger.Debug("summary cache unavailable", zap.Error(err))
		}
	}

	return applyScript(ctx, rf, cache, opts, script)
}

// applyScript runs the script against the workspace held by rf and
// emits the final diff, edit sets, or file writes.
func applyScript(ctx context.Context, rf *refactor.Refactor, cache *index.Cache, opts *options, script string) error {
	snap, err := rf.Load()
	if err != nil {
		return err
	}

	text := script
	for text != "" {
		var line string
		line, text, _ = strings.Cut(text, "\n")
		line = trimComments(line)
		for strings.HasSuffix(line, `\`) && text != "" {
			var l string
			l, text, _ = strings.Cut(text, "\n")
			line = line[:len(line)-1] + " " + l
			line = trimComments(line)
		}
		line = strings.TrimLeft(line, " \t\n")
		if line == "" {
			continue
		}
		name, args, _ := cutAny(line, " \t")

		fn := cmds[name]
		if fn == nil {
			return fmt.Errorf("unknown command %s", name)
		}

		// Each command sees an index built over the text produced by
		// the commands before it.
		ws, err := index.Build(ctx, snap.Texts(), cache, rf.Log)
		if err != nil {
			return err
		}
		snap.SetIndex(ws)

		if err := fn(ctx, snap, strings.TrimSpace(args)); err != nil {
			return err
		}
		if err := snap.Errors.Err(); err != nil {
			return err
		}
		if opts.edits {
			if err := printEdits(rf.Stdout, snap.EditSet()); err != nil {
				return err
			}
		}
		snap = snap.Apply()
	}

	switch {
	case rf.ShowDiff:
		d, err := snap.Diff()
		if err != nil {
			return err
		}
		printDiff(rf.Stdout, d, useColor(opts.color))
	case opts.edits:
		// Already printed per command.
	default:
		if err := snap.Write(); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	return cfg.Build()
}

// printEdits writes one edit set as a single JSON line, keeping a
// multi-command script parseable as JSON Lines.
func printEdits(w io.Writer, set *refactor.EditSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return !color.NoColor
}

func printDiff(w io.Writer, d []byte, colorize bool) {
	if !colorize {
		w.Write(d)
		return
	}
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	for len(d) > 0 {
		line := d
		if i := bytes.IndexByte(d, '\n'); i >= 0 {
			line, d = d[:i], d[i+1:]
		} else {
			d = nil
		}
		s := string(line)
		switch {
		case strings.HasPrefix(s, "diff "), strings.HasPrefix(s, "--- "), strings.HasPrefix(s, "+++ "):
			bold.Fprintln(w, s)
		case strings.HasPrefix(s, "@@"):
			cyan.Fprintln(w, s)
		case strings.HasPrefix(s, "+"):
			green.Fprintln(w, s)
		case strings.HasPrefix(s, "-"):
			red.Fprintln(w, s)
		default:
			fmt.Fprintln(w, s)
		}
	}
}

// trimComments cuts a script line at a # comment, being careful not to
// cut inside quoted text, and trims surrounding space.
func trimComments(line string) string {
	var q byte
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case q:
			q = 0
		case '\'', '"':
			q = c
		case '\\':
			if q != 0 {
				i++
			}
		case '#':
			if q == 0 {
				line = line[:i]
			}
		}
	}
	return strings.TrimSpace(line)
}

func cutAny(s, any string) (before, after string, ok bool) {
	if i := strings.IndexAny(s, any); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[:i], s[i+size:], true
	}
	return s, "", false
}

// parsePos parses a 1-based argument position.
func parsePos(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("position %q is not a positive integer", s)
	}
	return n, nil
}

// parsePerm parses a comma-separated permutation such as "3,1,2".
// Whether it is a bijection on the target's positions is checked
// against the resolved arity, not here.
func parsePerm(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	perm := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("permutation entry %q is not an integer", p)
		}
		perm[i] = n
	}
	return perm, nil
}

// parseEntity splits an optional /N parameter count off an entity
// argument. A count that contradicts the workspace is rejected before
// any rewriting starts.
func parseEntity(ctx context.Context, snap *refactor.Snapshot, arg string) (string, error) {
	name, count, ok := strings.Cut(arg, "/")
	if !logtalk.IsAtomName(name) {
		return "", newErrUsage("entity name %q is not an atom", name)
	}
	if !ok {
		return name, nil
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return "", newErrUsage("entity %q: %q is not a parameter count", arg, count)
	}
	ent, err := snap.Index().FindEntity(ctx, name)
	if err != nil {
		return "", err
	}
	if ent != nil && len(ent.Params) != n {
		return "", newErrPrecondition("entity %s has %d parameters, not %d", name, len(ent.Params), n)
	}
	return name, nil
}

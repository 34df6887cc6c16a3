// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o777))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
}

func TestFindConfigWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigName), "")
	nested := filepath.Join(dir, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o777))

	path, ok, err := FindConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, ConfigName), path)
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, root, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, dir, root)
	require.Equal(t, []string{".lgt", ".logtalk"}, cfg.Workspace.Extensions)
}

func TestLoadConfigManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigName), `
required-version = "0.2.0"

[workspace]
extensions = ["lgt", ".pl"]
exclude = ["build"]
`)
	cfg, root, err := LoadConfig(filepath.Join(dir))
	require.NoError(t, err)
	require.Equal(t, dir, root)
	require.Equal(t, "0.2.0", cfg.RequiredVersion)
	require.Equal(t, []string{".lgt", ".pl"}, cfg.Workspace.Extensions)
	require.Equal(t, []string{"build"}, cfg.Workspace.Exclude)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigName), `
[workspace]
extentions = ["lgt"]
`)
	_, _, err := LoadConfig(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown keys")
	require.Contains(t, err.Error(), "extentions")
}

func TestSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.lgt"), "b.\n")
	writeFile(t, filepath.Join(dir, "src", "a.lgt"), "a.\n")
	writeFile(t, filepath.Join(dir, "src", "notes.txt"), "skip\n")
	writeFile(t, filepath.Join(dir, "build", "gen.lgt"), "skip.\n")
	writeFile(t, filepath.Join(dir, ".git", "x.lgt"), "skip.\n")

	cfg := defaultConfig()
	cfg.Workspace.Exclude = []string{"build"}
	files, err := cfg.SourceFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"b.lgt", "src/a.lgt"}, files)
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigName is the workspace manifest file. Its directory is the
// workspace root; every source file below it is in scope.
const ConfigName = "lgtrf.toml"

// A Config is the decoded workspace manifest. All fields are optional.
type Config struct {
	// RequiredVersion, when set, names the minimum tool version the
	// workspace expects, as a semantic version like "0.3.0".
	RequiredVersion string `toml:"required-version"`

	Workspace WorkspaceConfig `toml:"workspace"`
}

// WorkspaceConfig controls which files belong to the workspace.
type WorkspaceConfig struct {
	// Extensions lists the file suffixes treated as Logtalk source.
	Extensions []string `toml:"extensions"`

	// Exclude lists directory names skipped during the workspace walk.
	Exclude []string `toml:"exclude"`
}

func defaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Extensions: []string{".lgt", ".logtalk"},
		},
	}
}

// FindConfig walks up from dir looking for the workspace manifest.
// It returns the manifest path, or ok=false if no manifest exists up to
// the filesystem root.
func FindConfig(dir string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}
	for {
		p := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(p); err == nil {
			return p, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadConfig locates and decodes the workspace manifest for dir.
// Without a manifest the workspace root is dir itself and defaults
// apply. Unknown keys are rejected so that a typo cannot silently
// change which files are rewritten.
func LoadConfig(dir string) (*Config, string, error) {
	path, ok, err := FindConfig(dir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, "", err
		}
		return defaultConfig(), abs, nil
	}

	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, "", fmt.Errorf("parsing %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if len(cfg.Workspace.Extensions) == 0 {
		cfg.Workspace.Extensions = defaultConfig().Workspace.Extensions
	}
	for i, ext := range cfg.Workspace.Extensions {
		if !strings.HasPrefix(ext, ".") {
			cfg.Workspace.Extensions[i] = "." + ext
		}
	}
	return cfg, filepath.Dir(path), nil
}

// SourceFiles walks root and returns the workspace source files as
// sorted slash-separated paths relative to root. Hidden directories and
// configured exclusions are skipped.
func (c *Config) SourceFiles(root string) ([]string, error) {
	exclude := make(map[string]bool, len(c.Workspace.Exclude))
	for _, name := range c.Workspace.Exclude {
		exclude[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (exclude[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range c.Workspace.Extensions {
			if strings.HasSuffix(path, ext) {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				files = append(files, filepath.ToSlash(rel))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Copyright 2025 The Lgtrf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"lgtrf/refactor"
)

// version is the release this source tree builds.
const version = "0.3.0"

// checkRequiredVersion enforces the manifest's required-version key, so
// a workspace depending on newer rewrite behavior fails fast instead of
// being rewritten subtly differently by an old tool.
func checkRequiredVersion(cfg *refactor.Config) error {
	req := cfg.RequiredVersion
	if req == "" {
		return nil
	}
	want := "v" + strings.TrimPrefix(req, "v")
	if !semver.IsValid(want) {
		return fmt.Errorf("%s: invalid required-version %q", refactor.ConfigName, req)
	}
	if semver.Compare("v"+version, want) < 0 {
		return fmt.Errorf("%s requires lgtrf %s or newer, running %s", refactor.ConfigName, req, version)
	}
	return nil
}

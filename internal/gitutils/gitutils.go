// bt - Build and packaging tool for the Kegsmith desktop application
// Copyright (C) 2025 The Kegsmith Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package gitutils configures the project git checkout: whitespace
// settings, hooks and submodules.
package gitutils

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/osutils"
)

// coreWhitespace matches the project coding standard of 3-space
// indentation with no tabs.
const coreWhitespace = "tabwidth=3,tab-in-indent"

// ConfigureWhitespace sets core.whitespace in the repository config so
// `git diff` flags indentation that violates the coding standard.
func ConfigureWhitespace(baseDir string) error {
	repo, err := git.PlainOpen(baseDir)
	if err != nil {
		return fmt.Errorf("gitutils: open %s: %w", baseDir, err)
	}
	cfg, err := repo.Config()
	if err != nil {
		return err
	}
	cfg.Raw.Section("core").SetOption("whitespace", coreWhitespace)
	if err := repo.SetConfig(cfg); err != nil {
		return err
	}
	slog.Info("Set git config", "core.whitespace", coreWhitespace)
	return nil
}

// EnablePreCommitHook activates the standard pre-commit hook that
// warns about whitespace errors, by copying the sample hook git ships
// into place.
func EnablePreCommitHook(gitDir string) error {
	src := filepath.Join(gitDir, "hooks", "pre-commit.sample")
	dst := filepath.Join(gitDir, "hooks", "pre-commit")
	if err := osutils.CopyFile(src, dst); err != nil {
		return fmt.Errorf("gitutils: enable pre-commit hook: %w", err)
	}
	if err := os.Chmod(dst, 0o755); err != nil {
		return err
	}
	slog.Info("Enabled pre-commit whitespace hook")
	return nil
}

// EnsureSubmodules initialises and updates the git submodules when the
// submodules directory does not yet hold the expected number of them.
// The git binary does this rather than go-git: `git submodule update`
// knows how to resume a partial clone, which matters on flaky networks.
func EnsureSubmodules(ctx context.Context, runner executil.Runner, baseDir, submodulesDir string, want int) error {
	have, err := countSubmodules(submodulesDir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if have >= want {
		slog.Debug("Submodules already present", "have", have)
		return nil
	}
	slog.Info("Fetching git submodules", "have", have, "want", want)
	err = runner.Run(ctx, executil.Cmd{
		Name: "git",
		Args: []string{"submodule", "init"},
		Dir:  baseDir,
	})
	if err != nil {
		return err
	}
	return runner.Run(ctx, executil.Cmd{
		Name: "git",
		Args: []string{"submodule", "update"},
		Dir:  baseDir,
	})
}

// countSubmodules counts the non-empty subdirectories of dir. A
// submodule directory exists but is empty before `git submodule
// update` has run.
func countSubmodules(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, err := os.ReadDir(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, err
		}
		if len(sub) > 0 {
			n++
		}
	}
	return n, nil
}

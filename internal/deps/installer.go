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

// Package deps installs the libraries and frameworks the build needs,
// per platform. The installers are idempotent: already-satisfied
// dependencies are detected and skipped, so `bt setup all` is safe to
// rerun.
package deps

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/dlcache"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/gitutils"
)

// Installer drives dependency installation for the current platform.
type Installer struct {
	runner executil.Runner
	paths  *config.Paths
	cache  *dlcache.Cache
}

func NewInstaller(runner executil.Runner, paths *config.Paths, cache *dlcache.Cache) *Installer {
	return &Installer{runner: runner, paths: paths, cache: cache}
}

// Install installs everything the build needs on this platform, then
// the cross-platform pieces (git submodules and libbacktrace).
func (i *Installer) Install(ctx context.Context) error {
	slog.Info("Checking which dependencies need to be installed")

	var err error
	switch runtime.GOOS {
	case "linux":
		err = i.installLinux(ctx)
	case "windows":
		err = i.installWindows(ctx)
	case "darwin":
		err = i.installDarwin(ctx)
	default:
		err = fmt.Errorf("deps: unrecognised platform %s", runtime.GOOS)
	}
	if err != nil {
		return err
	}

	if err := i.installCommon(ctx); err != nil {
		return err
	}
	slog.Info("Finished checking / installing dependencies")
	return nil
}

// installCommon handles the dependencies every platform shares:
// libbacktrace is brought in as a git submodule and compiled from
// source, since it is no longer shipped with GCC by default and has no
// Debian package.
func (i *Installer) installCommon(ctx context.Context) error {
	err := gitutils.EnsureSubmodules(ctx, i.runner, i.paths.BaseDir, i.paths.SubmodulesDir, config.NumSubmodules)
	if err != nil {
		return err
	}
	return i.buildLibbacktrace(ctx)
}

// buildLibbacktrace configures and compiles the libbacktrace
// submodule. It uses autoconf, so the build is configure-then-make.
//
// The configure script is invoked via `sh` rather than directly:
// invoking it directly does not work under MSYS2, and running it with
// bash produces a Makefile that builds a library with missing symbols.
func (i *Installer) buildLibbacktrace(ctx context.Context) error {
	slog.Info("Checking libbacktrace is built")
	dir := filepath.Join(i.paths.SubmodulesDir, "libbacktrace")
	err := i.runner.Run(ctx, executil.Cmd{
		Name: "sh",
		Args: []string{"./configure"},
		Dir:  dir,
	})
	if err != nil {
		return err
	}
	return i.runner.Run(ctx, executil.Cmd{
		Name: "make",
		Dir:  dir,
	})
}

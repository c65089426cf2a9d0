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

// Package meson wraps the Meson build system commands bt drives.
package meson

import (
	"context"
	"fmt"
	"strings"

	"go.elara.ws/vercmp"

	"github.com/kegsmith/bt/internal/executil"
)

// minDistAllowDirty is the first Meson version whose dist subcommand
// accepts --allow-dirty. Older versions warn about uncommitted changes
// but continue anyway, so the flag is simply omitted there.
const minDistAllowDirty = "0.62.0"

// Meson is a located Meson installation.
type Meson struct {
	Exe     string
	Version string

	runner executil.Runner
}

// Find locates Meson on PATH and asks it for its version.
func Find(ctx context.Context, runner executil.Runner) (*Meson, error) {
	exe := executil.LookPath("meson")
	if exe == "" {
		return nil, fmt.Errorf("meson: not found on PATH, run `bt setup` first")
	}
	version, err := runner.Output(ctx, executil.Cmd{
		Name: exe,
		Args: []string{"--version"},
	})
	if err != nil {
		return nil, err
	}
	return New(exe, strings.TrimSpace(version), runner), nil
}

// New constructs a Meson handle directly. Tests use it to pin the
// version without running anything.
func New(exe, version string, runner executil.Runner) *Meson {
	return &Meson{Exe: exe, Version: version, runner: runner}
}

// AtLeast reports whether the installed Meson is at least the given
// version.
func (m *Meson) AtLeast(version string) bool {
	return vercmp.Compare(m.Version, version) >= 0
}

// Setup creates or reconfigures the build directory. Extra arguments
// (eg -Dbuildtype=release) are passed through.
func (m *Meson) Setup(ctx context.Context, sourceDir, buildDir string, extraArgs ...string) error {
	args := append([]string{"setup", buildDir, sourceDir}, extraArgs...)
	return m.runner.Run(ctx, executil.Cmd{Name: m.Exe, Args: args})
}

// Dist builds the source tarball. Unit tests are skipped since the
// packaging run is expected to happen after a successful CI build, and
// uncommitted changes are tolerated where the Meson version allows it.
func (m *Meson) Dist(ctx context.Context, buildDir string) error {
	args := []string{"dist", "--no-tests"}
	if m.AtLeast(minDistAllowDirty) {
		args = append(args, "--allow-dirty")
	}
	return m.runner.Run(ctx, executil.Cmd{
		Name: m.Exe,
		Args: args,
		Dir:  buildDir,
	})
}

// Install installs the built tree into destDir instead of the live
// system, giving the packaging steps a complete image to work from.
func (m *Meson) Install(ctx context.Context, buildDir, destDir string) error {
	return m.runner.Run(ctx, executil.Cmd{
		Name: m.Exe,
		Args: []string{"install", "--destdir", destDir},
		Dir:  buildDir,
	})
}

// Compile runs a build in the given build directory.
func (m *Meson) Compile(ctx context.Context, buildDir string) error {
	return m.runner.Run(ctx, executil.Cmd{
		Name: m.Exe,
		Args: []string{"compile"},
		Dir:  buildDir,
	})
}

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

package manager

import (
	"context"

	"github.com/kegsmith/bt/internal/executil"
)

// APT represents the APT package manager. All mutating operations run
// under sudo.
type APT struct {
	runner executil.Runner
}

func NewAPT(runner executil.Runner) *APT {
	return &APT{runner: runner}
}

func (*APT) Name() string { return "apt" }

func (*APT) Exists() bool {
	return executil.LookPath("apt") != ""
}

func (a *APT) Sync(ctx context.Context) error {
	return a.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: []string{"apt", "update"},
	})
}

func (a *APT) Upgrade(ctx context.Context) error {
	return a.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: []string{"apt", "upgrade", "-y"},
	})
}

func (a *APT) Install(ctx context.Context, pkgs ...string) error {
	return a.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: append([]string{"apt", "install", "-y"}, pkgs...),
	})
}

// Remove removes the named packages. Used when a distro ships a
// version of a tool too old to work with.
func (a *APT) Remove(ctx context.Context, pkgs ...string) error {
	return a.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: append([]string{"apt", "remove", "-y"}, pkgs...),
	})
}

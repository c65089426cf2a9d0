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
	"log/slog"

	"github.com/kegsmith/bt/internal/executil"
)

// Pacman represents the pacman package manager as shipped by MSYS2.
// Unlike APT, packages are installed one at a time: MSYS2 mirrors
// occasionally fail on a single package, and installing individually
// lets the rest proceed before the failure surfaces.
type Pacman struct {
	runner executil.Runner
}

func NewPacman(runner executil.Runner) *Pacman {
	return &Pacman{runner: runner}
}

func (*Pacman) Name() string { return "pacman" }

func (*Pacman) Exists() bool {
	return executil.LookPath("pacman") != ""
}

func (p *Pacman) Sync(ctx context.Context) error {
	return p.runner.Run(ctx, executil.Cmd{
		Name: "pacman",
		Args: []string{"-S", "-y", "--noconfirm"},
	})
}

func (p *Pacman) Upgrade(ctx context.Context) error {
	return p.runner.Run(ctx, executil.Cmd{
		Name: "pacman",
		Args: []string{"-S", "-u", "--noconfirm"},
	})
}

func (p *Pacman) Install(ctx context.Context, pkgs ...string) error {
	for _, pkg := range pkgs {
		slog.Info("Installing", "package", pkg)
		err := p.runner.Run(ctx, executil.Cmd{
			Name: "pacman",
			Args: []string{
				"-S", "--needed", "--noconfirm", "--disable-download-timeout", pkg,
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

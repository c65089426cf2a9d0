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
	"strings"

	"github.com/kegsmith/bt/internal/executil"
)

// Brew represents the Homebrew package manager.
type Brew struct {
	runner executil.Runner
}

func NewBrew(runner executil.Runner) *Brew {
	return &Brew{runner: runner}
}

func (*Brew) Name() string { return "brew" }

func (*Brew) Exists() bool {
	return executil.LookPath("brew") != ""
}

func (b *Brew) Sync(ctx context.Context) error {
	return b.runner.Run(ctx, executil.Cmd{
		Name: "brew",
		Args: []string{"update"},
	})
}

func (b *Brew) Upgrade(ctx context.Context) error {
	return b.runner.Run(ctx, executil.Cmd{
		Name: "brew",
		Args: []string{"upgrade"},
	})
}

// Install installs the named formulae, consulting `brew list` first so
// already-installed formulae are not reinstalled.
func (b *Brew) Install(ctx context.Context, pkgs ...string) error {
	installed, err := b.installed(ctx)
	if err != nil {
		return err
	}
	for _, pkg := range pkgs {
		if installed[pkg] {
			continue
		}
		err := b.runner.Run(ctx, executil.Cmd{
			Name: "brew",
			Args: []string{"install", pkg},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Link force-links a keg-only formula into the Homebrew prefix.
func (b *Brew) Link(ctx context.Context, formula string) error {
	return b.runner.Run(ctx, executil.Cmd{
		Name: "brew",
		Args: []string{"link", "--force", formula},
	})
}

// Prefix returns the installation prefix of a formula.
func (b *Brew) Prefix(ctx context.Context, formula string) (string, error) {
	return b.runner.Output(ctx, executil.Cmd{
		Name: "brew",
		Args: []string{"--prefix", formula},
	})
}

func (b *Brew) installed(ctx context.Context) (map[string]bool, error) {
	out, err := b.runner.Output(ctx, executil.Cmd{
		Name: "brew",
		Args: []string{"list"},
	})
	if err != nil {
		return nil, err
	}
	installed := map[string]bool{}
	for _, name := range strings.Fields(out) {
		installed[name] = true
	}
	return installed, nil
}

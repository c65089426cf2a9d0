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

// MacPorts represents the MacPorts package manager. It supplements
// Homebrew on macOS for the handful of ports Homebrew does not carry
// (Xalan-C and Xerces-C).
type MacPorts struct {
	runner executil.Runner
}

func NewMacPorts(runner executil.Runner) *MacPorts {
	return &MacPorts{runner: runner}
}

func (*MacPorts) Name() string { return "port" }

func (*MacPorts) Exists() bool {
	return executil.LookPath("port") != ""
}

func (m *MacPorts) Sync(ctx context.Context) error {
	return m.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: []string{"port", "sync"},
	})
}

func (m *MacPorts) Upgrade(ctx context.Context) error {
	return m.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: []string{"port", "upgrade", "outdated"},
	})
}

func (m *MacPorts) Install(ctx context.Context, pkgs ...string) error {
	return m.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: append([]string{"port", "install"}, pkgs...),
	})
}

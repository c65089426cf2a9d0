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

// Package manager abstracts over the system package managers bt
// installs build dependencies with.
package manager

import (
	"context"
)

// Manager is the contract every package manager here satisfies. The
// dependency installers work with the concrete types, since each
// manager also has operations of its own (APT removal, Homebrew
// linking), but the shared operations stay uniform.
type Manager interface {
	// Name returns the name of the package manager command.
	Name() string
	// Exists reports whether the package manager is installed.
	Exists() bool
	// Sync refreshes the package manager's package index.
	Sync(ctx context.Context) error
	// Upgrade upgrades all installed packages to their newest versions.
	Upgrade(ctx context.Context) error
	// Install installs the named packages, skipping any that are
	// already present.
	Install(ctx context.Context, pkgs ...string) error
}

var (
	_ Manager = (*APT)(nil)
	_ Manager = (*Pacman)(nil)
	_ Manager = (*Brew)(nil)
	_ Manager = (*MacPorts)(nil)
)

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

package deps

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/manager"
)

// brewPackages is everything we install via Homebrew. Some entries
// imply others (installing Xalan-C would pull in Xerces-C) but listing
// direct dependencies explicitly is clearer. Qt stays at 5 for now as
// code changes are needed for Qt 6. The tree command is not needed for
// the build itself but helps diagnose build problems in CI.
var brewPackages = []string{
	"llvm",
	"gcc",
	"cmake",
	"coreutils",
	"boost",
	"doxygen",
	"git",
	"meson",
	"ninja",
	"pandoc",
	"tree",
	"qt@5",
}

// portPackages is what we install via MacPorts: Homebrew stopped
// supplying a Xalan-C package at the end of 2023.
var portPackages = []string{
	"xalanc",
	"xercesc3",
}

// installDarwin installs dependencies on macOS. Homebrew does the bulk
// of the work, MacPorts fills in what Homebrew no longer carries.
// Homebrew itself is assumed to be installed already (it is on the CI
// runners).
func (i *Installer) installDarwin(ctx context.Context) error {
	brew := manager.NewBrew(i.runner)
	slog.Info("Ensuring libraries and frameworks are installed")
	if err := brew.Install(ctx, brewPackages...); err != nil {
		return err
	}

	// Even once Qt5 is installed, Meson will not find it unless its
	// binaries and libraries are symlinked into /usr/local.
	if err := brew.Link(ctx, "qt5"); err != nil {
		return err
	}
	if err := i.exportQtEnvironment(ctx, brew); err != nil {
		return err
	}

	port := manager.NewMacPorts(i.runner)
	if err := port.Install(ctx, portPackages...); err != nil {
		return err
	}

	// dmgbuild is the command line tool that creates the .dmg disk
	// image. The badge_icons extra enables the badge_icon setting.
	return i.runner.Run(ctx, executil.Cmd{
		Name: "pip3",
		Args: []string{"install", "dmgbuild[badge_icons]"},
	})
}

// exportQtEnvironment points the toolchain at the keg-only Qt5
// install, per the instructions the brew install prints. The PATH
// export goes into ~/.bash_profile for future shells; failure to write
// it is not fatal (CI runners deny the write) so it just logs a
// warning. The remaining variables are set in this process so the
// Meson and CMake invocations we spawn inherit them.
func (i *Installer) exportQtEnvironment(ctx context.Context, brew *manager.Brew) error {
	home, err := os.UserHomeDir()
	if err == nil {
		profile := filepath.Join(home, ".bash_profile")
		f, err := os.OpenFile(profile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			_, werr := f.WriteString(`export PATH="/usr/local/opt/qt@5/bin:$PATH"` + "\n")
			cerr := f.Close()
			if werr != nil {
				err = werr
			} else {
				err = cerr
			}
		}
		if err != nil {
			slog.Warn("Unable to write to .bash_profile", "error", err)
		}
	}

	os.Setenv("LDFLAGS", "-L/usr/local/opt/qt@5/lib")
	os.Setenv("CPPFLAGS", "-I/usr/local/opt/qt@5/include")
	os.Setenv("PKG_CONFIG_PATH", "/usr/local/opt/qt@5/lib/pkgconfig")

	// CMake needs CMAKE_PREFIX_PATH to find Qt; typically this ends up
	// as /usr/local/opt/qt@5.
	prefix, err := brew.Prefix(ctx, "qt5")
	if err != nil {
		return err
	}
	slog.Debug("Qt prefix path", "path", prefix)
	os.Setenv("CMAKE_PREFIX_PATH", prefix)
	return nil
}

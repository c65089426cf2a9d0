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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kegsmith/bt/internal/dl"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/manager"
	"github.com/kegsmith/bt/internal/osutils"
)

// Only the 64-bit MSYS2 environment is supported. 32-bit builds were
// dropped when the i686 MSYS2 packages we relied on disappeared in
// January 2024.
const requiredMsysEnvironment = "MINGW64"

const msysArch = "x86_64"

// pacmanPackages is everything we need from MSYS2.
var pacmanPackages = []string{
	"base-devel",
	"cmake",
	"coreutils",
	"doxygen",
	"gcc",
	"git",
	"mingw-w64-" + msysArch + "-boost",
	"mingw-w64-" + msysArch + "-cmake",
	"mingw-w64-" + msysArch + "-libbacktrace",
	"mingw-w64-" + msysArch + "-meson",
	"mingw-w64-" + msysArch + "-nsis",
	"mingw-w64-" + msysArch + "-freetype",
	"mingw-w64-" + msysArch + "-harfbuzz",
	"mingw-w64-" + msysArch + "-qt5-base",
	"mingw-w64-" + msysArch + "-qt5-static",
	"mingw-w64-" + msysArch + "-qt5",
	"mingw-w64-" + msysArch + "-toolchain",
	"mingw-w64-" + msysArch + "-xalan-c",
	"mingw-w64-" + msysArch + "-xerces-c",
}

// nsisPlugins are the NSIS plugins the installer script uses, fetched
// from the NSIS wiki. Each zip is unpacked and the listed files copied
// into the NSIS installation.
var nsisPlugins = []struct {
	url   string
	files map[string]string // path within zip -> destination directory
}{
	{
		url: "https://nsis.sourceforge.io/mediawiki/images/a/af/Locate.zip",
		files: map[string]string{
			"Include/Locate.nsh": "/mingw64/share/nsis/Include/",
			"Plugin/locate.dll":  "/mingw64/share/nsis/Plugins/ansi/",
		},
	},
	{
		url: "https://nsis.sourceforge.io/mediawiki/images/7/76/Nsislog.zip",
		files: map[string]string{
			"plugin/nsislog.dll": "/mingw64/share/nsis/Plugins/ansi/",
		},
	},
}

// installWindows installs dependencies in the MSYS2 environment.
func (i *Installer) installWindows(ctx context.Context) error {
	if err := i.checkMsysEnvironment(ctx); err != nil {
		return err
	}

	// This is what the pip error message tells you to run when pip is
	// out of date.
	slog.Info("Ensuring Python pip is up-to-date")
	err := i.runner.Run(ctx, executil.Cmd{
		Name: "python3.exe",
		Args: []string{"-m", "pip", "install", "--upgrade", "pip"},
	})
	if err != nil {
		return err
	}

	// Updating packages gives "error: failed to commit transaction
	// (conflicting files)" for a bunch of Python packaging files
	// unless pacman is forced to overwrite them.
	slog.Info("Ensuring Python packaging is up-to-date")
	for _, pkg := range []string{"mingw-w64-i686-python-packaging", "mingw-w64-x86_64-python-packaging"} {
		err := i.runner.Run(ctx, executil.Cmd{
			Name: "pacman",
			Args: []string{"-S", "--noconfirm", "--overwrite", "*python*", pkg},
		})
		if err != nil {
			return err
		}
	}

	// Refresh the package database and upgrade the MSYS2 installation
	// itself before installing anything, otherwise package installs
	// can hit problems.
	slog.Info("Ensuring required libraries and frameworks are installed")
	pacman := manager.NewPacman(i.runner)
	if err := pacman.Sync(ctx); err != nil {
		return err
	}
	if err := pacman.Upgrade(ctx); err != nil {
		return err
	}
	if err := pacman.Install(ctx, pacmanPackages...); err != nil {
		return err
	}

	return i.installNsisPlugins(ctx)
}

// checkMsysEnvironment verifies we are running under the 64-bit MSYS2
// environment. The presence of uname on PATH is a good indicator of
// MSYS2 at all; its output tells us which environment.
func (i *Installer) checkMsysEnvironment(ctx context.Context) error {
	if executil.LookPath("uname") == "" {
		return fmt.Errorf("deps: cannot find uname; this tool needs to run under MSYS2 - see https://www.msys2.org/")
	}
	out, err := i.runner.Output(ctx, executil.Cmd{
		Name: "uname",
		Args: []string{"-a"},
	})
	if err != nil {
		return err
	}
	slog.Debug("uname -a", "output", out)
	if env := EnvironmentFromUname(out); env != requiredMsysEnvironment {
		return fmt.Errorf("deps: running in %s but need %s (64-bit build environment)", env, requiredMsysEnvironment)
	}
	return nil
}

// installNsisPlugins downloads the NSIS plugin zips and copies their
// contents into the NSIS installation.
func (i *Installer) installNsisPlugins(ctx context.Context) error {
	tmpDir, err := os.MkdirTemp("", "bt-nsis-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	for _, plugin := range nsisPlugins {
		archive, err := dl.Download(ctx, dl.Options{
			URL:         plugin.url,
			Destination: tmpDir,
			Cache:       i.cache,
		})
		if err != nil {
			return err
		}
		extractDir := filepath.Join(tmpDir, filepath.Base(archive)+".extracted")
		if err := dl.Extract(ctx, archive, extractDir); err != nil {
			return err
		}
		for rel, destDir := range plugin.files {
			src := filepath.Join(extractDir, filepath.FromSlash(rel))
			dst := filepath.Join(destDir, filepath.Base(rel))
			slog.Debug("Installing NSIS plugin file", "src", src, "dst", dst)
			if err := osutils.CopyFile(src, dst); err != nil {
				return err
			}
		}
	}
	return nil
}

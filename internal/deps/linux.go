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

	"go.elara.ws/vercmp"

	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/dl"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/manager"
)

const (
	minGPPVersion = "10.1.0"

	// Boost 1.79 is the oldest version with Boost.JSON. Many distros
	// still ship older ones, in which case we build 1.84.0 from source
	// (the version to install must carry the patch level, as it forms
	// part of the tarball name).
	minBoostVersion       = "1.79.0"
	boostVersionToInstall = "1.84.0"

	// Ubuntu releases before this ship a Meson too old for us, so
	// there the distro package is replaced with a pip install.
	minUbuntuRelease = "22.04"
)

// aptPackages is everything we need from the distro on a Debian-based
// Linux. CMake is needed even for the Meson build because Meson uses
// it as one of its library-finding tools; pandoc creates man pages
// from markdown; build-essential and debhelper are for creating Debian
// packages; rpm and rpmlint for RPM packages; python3-dev is needed to
// build parts of Boost.
var aptPackages = []string{
	"build-essential",
	"cmake",
	"coreutils",
	"debhelper",
	"git",
	"libqt5multimedia5-plugins",
	"libqt5sql5-psql",
	"libqt5sql5-sqlite",
	"libqt5svg5-dev",
	"libxalan-c-dev",
	"libxerces-c-dev",
	"lintian",
	"meson",
	"ninja-build",
	"pandoc",
	"python3",
	"python3-dev",
	"qtbase5-dev",
	"qtmultimedia5-dev",
	"qttools5-dev",
	"qttools5-dev-tools",
	"rpm",
	"rpmlint",
}

// installLinux installs dependencies on a Debian-based Linux. On other
// flavours the libraries and frameworks have to be installed manually.
func (i *Installer) installLinux(ctx context.Context) error {
	apt := manager.NewAPT(i.runner)
	if !apt.Exists() {
		return fmt.Errorf("deps: apt not found; on non-Debian distros, install dependencies manually")
	}

	slog.Info("Ensuring libraries and frameworks are installed")
	if err := apt.Sync(ctx); err != nil {
		return err
	}
	if err := apt.Install(ctx, aptPackages...); err != nil {
		return err
	}

	if err := i.ensureModernGPP(ctx, apt); err != nil {
		return err
	}
	if err := i.ensureBoost(ctx); err != nil {
		return err
	}
	return i.ensureModernMeson(ctx, apt)
}

// ensureModernGPP checks that g++ is new enough to have the <concepts>
// header (g++ 9 does not) and installs g++ 10 alongside the system one
// if not.
func (i *Installer) ensureModernGPP(ctx context.Context, apt *manager.APT) error {
	out, err := i.runner.Output(ctx, executil.Cmd{
		Name: "g++",
		Args: []string{"--version"},
	})
	if err != nil {
		return err
	}
	version := ParseGPPVersion(out)
	slog.Debug("Found g++", "version", version)
	if vercmp.Compare(version, minGPPVersion) >= 0 {
		return nil
	}

	slog.Info("Installing gcc/g++ 10 as current version is too old", "found", version)
	if err := apt.Install(ctx, "gcc-10", "g++-10"); err != nil {
		return err
	}
	// Make the version 10 compiler the default. A little high-handed,
	// but there is no other way to make both Meson and CMake pick it
	// over the system default, and it is easily reversible.
	slog.Info("Setting gcc/g++ 10 as default compiler via update-alternatives")
	return i.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: []string{
			"update-alternatives", "--install", "/usr/bin/gcc", "gcc", "/usr/bin/gcc-10", "60",
			"--slave", "/usr/bin/g++", "g++", "/usr/bin/g++-10",
		},
	})
}

// ensureBoost checks the installed Boost version and builds a recent
// one from source when the distro's is too old.
func (i *Installer) ensureBoost(ctx context.Context) error {
	found := i.probeBoostVersion()
	slog.Debug("Newest Boost found", "version", found, "need", minBoostVersion)
	if found != "" && vercmp.Compare(found, minBoostVersion) >= 0 {
		return nil
	}
	slog.Info("Installing Boost from source", "version", boostVersionToInstall, "found", found)
	return i.installBoost(ctx)
}

// probeBoostVersion returns the newest Boost version installed, or ""
// when none was found. It looks in /usr/include (distro packages),
// /usr/local/include (manual installs) and $BOOST_ROOT.
func (i *Installer) probeBoostVersion() string {
	headers := []string{
		"/usr/include/boost/version.hpp",
		"/usr/local/include/boost/version.hpp",
	}
	if root := config.Env().BoostRoot; root != "" {
		headers = append(headers, filepath.Join(root, "boost", "version.hpp"))
	}

	newest := ""
	for _, header := range headers {
		data, err := os.ReadFile(header)
		if err != nil {
			continue
		}
		version := ParseBoostLibVersion(string(data))
		if version == "" {
			continue
		}
		slog.Debug("Found Boost header", "path", header, "version", version)
		if newest == "" || vercmp.Compare(version, newest) > 0 {
			newest = version
		}
	}
	return newest
}

// installBoost downloads the Boost source tarball, bootstraps it and
// installs it under /usr/local (headers in /usr/local/include,
// libraries in /usr/local/lib). Installing under /usr instead would
// stop Meson finding the manually-installed Boost.
//
// Only the libraries we actually link against are built; the rest of
// Boost is header-only for our purposes.
func (i *Installer) installBoost(ctx context.Context) error {
	tmpDir, err := os.MkdirTemp("", "bt-boost-")
	if err != nil {
		return err
	}
	defer func() {
		// Some of the build products are root-owned after the sudo
		// install, so fix permissions before removing the tree.
		_ = i.runner.Run(ctx, executil.Cmd{
			Name: "sudo",
			Args: []string{"chmod", "--recursive", "a+rw", tmpDir},
		})
		_ = os.RemoveAll(tmpDir)
	}()

	underscoreName := "boost_" + underscores(boostVersionToInstall)
	url := "https://boostorg.jfrog.io/artifactory/main/release/" + boostVersionToInstall +
		"/source/" + underscoreName + ".tar.bz2"
	tarball, err := dl.Download(ctx, dl.Options{
		URL:         url,
		Destination: tmpDir,
		Cache:       i.cache,
	})
	if err != nil {
		return err
	}
	if err := dl.Extract(ctx, tarball, tmpDir); err != nil {
		return err
	}

	srcDir := filepath.Join(tmpDir, underscoreName)
	err = i.runner.Run(ctx, executil.Cmd{
		Name: "./bootstrap.sh",
		Args: []string{"--with-python=python3"},
		Dir:  srcDir,
	})
	if err != nil {
		return err
	}
	return i.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: []string{
			"./b2",
			"--with-algorithm",
			"--with-json",
			"--with-stacktrace",
			"install",
		},
		Dir: srcDir,
	})
}

// ensureModernMeson replaces the distro Meson with a pip install on
// Ubuntu releases older than 22.04, whose packaged Meson is too old.
// The pip install has to run as root, which is normally not
// recommended, but otherwise `meson install` cannot write to system
// directories; it is a last resort.
func (i *Installer) ensureModernMeson(ctx context.Context, apt *manager.APT) error {
	distro, err := i.runner.Output(ctx, executil.Cmd{
		Name: "lsb_release",
		Args: []string{"-is"},
	})
	if err != nil {
		return err
	}
	slog.Debug("Linux distro", "name", distro)
	if distro != "Ubuntu" {
		return nil
	}

	release, err := i.runner.Output(ctx, executil.Cmd{
		Name: "lsb_release",
		Args: []string{"-rs"},
	})
	if err != nil {
		return err
	}
	slog.Debug("Ubuntu release", "version", release)
	if vercmp.Compare(release, minUbuntuRelease) >= 0 {
		return nil
	}

	slog.Info("Installing newer version of Meson the hard way")
	if err := apt.Remove(ctx, "meson"); err != nil {
		return err
	}
	return i.runner.Run(ctx, executil.Cmd{
		Name: "sudo",
		Args: []string{"pip3", "install", "meson"},
	})
}

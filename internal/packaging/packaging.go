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

// Package packaging builds the distributable packages: .deb and .rpm
// on Linux, an NSIS installer on Windows, a .dmg disk image on Mac,
// plus the source tarball on every platform.
//
// Meson itself cannot do binary packaging (and it seems unlikely that
// will ever come within its scope), so the approach is: have Meson
// install everything into a staging tree with --destdir, then drive
// the native packaging tools of each platform over that tree.
package packaging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/meson"
	"github.com/kegsmith/bt/internal/osutils"
)

// Packager drives a packaging run.
type Packager struct {
	runner executil.Runner
	paths  *config.Paths
	meson  *meson.Meson

	// cfg is the build configuration Meson exported; loaded after
	// `meson install` has run.
	cfg *config.BuildConfig

	// artifacts collects the package files produced, for the history
	// record.
	artifacts []string
}

func New(runner executil.Runner, paths *config.Paths, m *meson.Meson) *Packager {
	return &Packager{runner: runner, paths: paths, meson: m}
}

// Artifacts returns the paths of the package files a Run produced.
func (p *Packager) Artifacts() []string {
	return p.artifacts
}

// Run executes the full packaging pipeline for the current platform.
func (p *Packager) Run(ctx context.Context) error {
	// Start with a fresh platform packaging directory.
	if err := recreateDir(p.paths.PlatformPackagesDir); err != nil {
		return err
	}

	// Meson can at least create the source tarball for us, via `meson
	// dist`. The advantage of having Meson do it rather than tarring
	// things up ourselves is that it includes only files actually in
	// the git repository, not whatever else is hanging around in the
	// source tree.
	slog.Info("Creating source tarball")
	if err := p.meson.Dist(ctx, p.paths.BuildDir); err != nil {
		return err
	}
	if err := p.collectSourceTarball(); err != nil {
		return err
	}

	// `meson install --destdir` puts all the installable files
	// (program executable, translation files, data files, etc) into
	// the platform packaging tree. It does not bundle the shared
	// libraries we need to ship on Windows and Mac; the
	// platform-specific code below deals with those.
	slog.Info("Running meson install with --destdir option")
	if err := p.meson.Install(ctx, p.paths.BuildDir, p.paths.PlatformPackagesDir); err != nil {
		return err
	}

	cfg, err := config.LoadBuildConfig(p.paths.BuildDir)
	if err != nil {
		return fmt.Errorf("packaging: read build config: %w", err)
	}
	p.cfg = cfg
	slog.Debug("Shared libraries", "paths", cfg.SharedLibraryPaths)

	switch runtime.GOOS {
	case "linux":
		err = p.packageLinux(ctx)
	case "windows":
		err = p.packageWindows(ctx)
	case "darwin":
		err = p.packageDarwin(ctx)
	default:
		err = fmt.Errorf("packaging: unrecognised platform %s", runtime.GOOS)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("⭐ Packaging complete ⭐")
	fmt.Println("See:")
	fmt.Println("   " + p.paths.PlatformPackagesDir + " for binaries")
	fmt.Println("   " + p.paths.SourcePackagesDir + " for source")
	return nil
}

// collectSourceTarball moves the source tarball and its checksum from
// Meson's meson-dist directory into packages/source.
func (p *Packager) collectSourceTarball() error {
	if err := recreateDir(p.paths.SourcePackagesDir); err != nil {
		return err
	}
	distDir := filepath.Join(p.paths.BuildDir, "meson-dist")
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		src := filepath.Join(distDir, e.Name())
		dst := filepath.Join(p.paths.SourcePackagesDir, e.Name())
		slog.Debug("Moving dist file", "from", src, "to", dst)
		if err := osutils.Move(src, dst); err != nil {
			return err
		}
	}
	return nil
}

// distribute moves a finished package file from its build location to
// the top-level platform packaging directory, writes its checksum
// sidecar and records it as an artifact of this run.
func (p *Packager) distribute(fromDir, fileName string) error {
	if fromDir != p.paths.PlatformPackagesDir {
		err := osutils.Move(
			filepath.Join(fromDir, fileName),
			filepath.Join(p.paths.PlatformPackagesDir, fileName),
		)
		if err != nil {
			return err
		}
	}
	slog.Info("Generating checksum file", "file", fileName)
	if err := WriteSha256Sum(p.paths.PlatformPackagesDir, fileName); err != nil {
		return err
	}
	p.artifacts = append(p.artifacts, filepath.Join(p.paths.PlatformPackagesDir, fileName))
	return nil
}

func recreateDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		slog.Info("Removing existing directory tree", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	slog.Info("Creating directory", "dir", dir)
	return os.MkdirAll(dir, 0o755)
}

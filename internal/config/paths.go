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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNoBaseDir is returned when the project root cannot be located.
var ErrNoBaseDir = errors.New("config: cannot find project base directory (no meson.build in any parent directory)")

// Paths describes the directory layout bt works in. Everything is
// derived from the base directory (the checkout root containing
// meson.build), so the tool behaves the same no matter where it is
// invoked from.
type Paths struct {
	BaseDir       string
	GitDir        string
	SubmodulesDir string
	BuildDir      string

	// Top-level packaging directory inside the build directory, plus
	// its per-platform and source subdirectories:
	//
	//    packages/
	//    ├── linux/    (or windows/ or darwin/)
	//    └── source/
	PackagesDir         string
	PlatformPackagesDir string
	SourcePackagesDir   string

	// CacheDir is the per-user bt cache (downloads, history database).
	CacheDir string
}

// NewPaths resolves the project layout, starting the base-directory
// search from the current working directory unless BT_BASE_DIR is set.
func NewPaths() (*Paths, error) {
	baseDir := Env().BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		baseDir, err = findBaseDir(wd)
		if err != nil {
			return nil, err
		}
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("config: unable to detect user cache directory: %w", err)
	}
	cacheDir = filepath.Join(cacheDir, "bt")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}

	buildDir := filepath.Join(baseDir, BuildDirName)
	packagesDir := filepath.Join(buildDir, "packages")
	return &Paths{
		BaseDir:             baseDir,
		GitDir:              filepath.Join(baseDir, ".git"),
		SubmodulesDir:       filepath.Join(baseDir, SubmodulesDirName),
		BuildDir:            buildDir,
		PackagesDir:         packagesDir,
		PlatformPackagesDir: filepath.Join(packagesDir, runtime.GOOS),
		SourcePackagesDir:   filepath.Join(packagesDir, "source"),
		CacheDir:            cacheDir,
	}, nil
}

// findBaseDir walks up from dir looking for meson.build.
func findBaseDir(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "meson.build")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoBaseDir
		}
		dir = parent
	}
}

// HasGitDir reports whether the base directory is a git checkout, as
// opposed to an unpacked source tarball.
func (p *Paths) HasGitDir() bool {
	fi, err := os.Stat(p.GitDir)
	return err == nil && fi.IsDir()
}

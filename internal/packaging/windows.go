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

package packaging

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/osutils"
)

// windowsLibraries are the non-Qt DLLs we know the application needs
// but windeployqt does not reliably detect. The list is less painful
// to maintain than it looks: miss a needed DLL and Windows names it in
// an error dialog at application start-up. In almost all cases these
// are installed on the build machine via pacman, so we never go to the
// upstream project directly.
var windowsLibraries = []string{
	"libbrotlicommon", // Brotli compression
	"libbrotlidec",
	"libbrotlienc",
	"libbz2",               // BZip2 compression
	"libdouble-conversion", // See https://github.com/google/double-conversion
	"libfreetype",
	// 32-bit and 64-bit MinGW use different exception handling, hence
	// libgcc_s_seh rather than libgcc_s_dw2 (which is 32-bit only).
	"libgcc_s_seh",
	"libglib-2.0",
	"libgraphite",
	"libharfbuzz", // HarfBuzz text shaping engine
	"libiconv",
	"libicudt", // International Components for Unicode
	"libicuin",
	"libicuuc",
	"libintl",
	"libmd4c",    // Markdown for C
	"libpcre2-8", // Perl Compatible Regular Expressions
	"libpcre2-16",
	"libpcre2-32",
	"libpng16",
	// libsqlite3 is needed IN ADDITION to bin/sqldrivers/qsqlite.dll,
	// which windeployqt installs.
	"libsqlite3",
	"libstdc++",
	"libwinpthread",
	"libxalan-c",
	"libxalanMsg",
	"libxerces-c-3",
	"libzstd", // ZStandard fast lossless compression
	"zlib",
}

// packageWindows builds the NSIS installer. NSIS is what we have
// historically used, and unlike WiX or Inno Setup it is available as
// an MSYS2 package, which makes automated builds straightforward.
func (p *Packager) packageWindows(ctx context.Context) error {
	slog.Debug("Windows Packaging")

	// Meson magicks up part of the install path (eg
	// msys64/mingw64/bin) and does not expose it to us, so search for
	// the bin directory instead of predicting it.
	binDir, err := FindBinDir(p.paths.PlatformPackagesDir)
	if err != nil {
		return err
	}
	slog.Debug("Package bin dir", "dir", binDir)

	// Data and doc directories are siblings of the bin directory.
	dataDir := filepath.Join(filepath.Dir(binDir), "data")
	docDir := filepath.Join(filepath.Dir(binDir), "doc")

	// Windows has no package manager we can lean on for shared
	// libraries, so everything not statically linked ships in the
	// installer. windeployqt assembles the Qt-related dependencies
	// (libraries, QML imports, plugins, translations) next to the
	// executable.
	slog.Debug("Running windeployqt")
	err = p.runner.Run(ctx, executil.Cmd{
		Name: "windeployqt",
		Args: []string{"--verbose", "2", config.ProjectName + ".exe"},
		Dir:  binDir,
	})
	if err != nil {
		return err
	}

	if err := p.copyExtraLibraries(binDir); err != nil {
		return err
	}

	// The NSIS installer script was generated into the build directory
	// by Meson; the NSIS compiler wants it next to what it packages.
	scriptName := "NsisInstallerScript.nsi"
	err = osutils.CopyFile(
		filepath.Join(p.paths.BuildDir, scriptName),
		filepath.Join(p.paths.PlatformPackagesDir, scriptName),
	)
	if err != nil {
		return err
	}

	// Variables from this tool are passed to the script as
	// command-line defines.
	err = p.runner.Run(ctx, executil.Cmd{
		Name: "MakeNSIS.exe",
		Args: []string{
			"/V4",
			`/DBT_PACKAGING_BIN_DIR="` + filepath.ToSlash(binDir) + `"`,
			`/DBT_PACKAGING_DATA_DIR="` + filepath.ToSlash(dataDir) + `"`,
			`/DBT_PACKAGING_DOC_DIR="` + filepath.ToSlash(docDir) + `"`,
			scriptName,
		},
		Dir: p.paths.PlatformPackagesDir,
	})
	if err != nil {
		return err
	}

	installerName := config.CapitalisedProjectName + " " + p.cfg.VersionString + " Installer.exe"
	return p.distribute(p.paths.PlatformPackagesDir, installerName)
}

// copyExtraLibraries finds each known shared library on PATH and
// copies it next to the executable. Failure to find one is fatal: the
// installed application would not start.
func (p *Packager) copyExtraLibraries(binDir string) error {
	pathsToSearch := filepath.SplitList(os.Getenv("PATH"))
	for _, lib := range windowsLibraries {
		found := false
		for _, searchDir := range pathsToSearch {
			matches := FindLibraryMatches(searchDir, lib)
			if len(matches) == 0 {
				continue
			}
			slog.Debug("Found library", "lib", lib, "dir", searchDir, "matches", len(matches))
			if len(matches) > 1 {
				slog.Warn("Found more matches than expected; possibly shipping shared libraries we do not need",
					"lib", lib, "matches", matches)
			}
			for _, match := range matches {
				src := filepath.Join(searchDir, match)
				slog.Debug("Copying library", "from", src, "to", binDir)
				if err := osutils.CopyFile(src, filepath.Join(binDir, match)); err != nil {
					return err
				}
			}
			found = true
			break
		}
		if !found {
			return fmt.Errorf("packaging: could not find %s library in PATH %s", lib, os.Getenv("PATH"))
		}
	}
	return nil
}

// librarySuffixRe matches the part of a DLL file name after the
// library name: an optional dash, an optional version number, ".dll".
var librarySuffixRe = regexp.MustCompile(`^-?[0-9]*\.dll$`)

// FindLibraryMatches returns the DLL file names in dir for library
// lib: "libfoo.dll", "libfoo-X.dll" or "libfooX.dll", where X is a
// possibly multi-digit version number. The glob gives approximate
// matches; the suffix regexp makes them exact without the library name
// itself being treated as a pattern (which would bite on "libstdc++").
func FindLibraryMatches(dir, lib string) []string {
	globMatches, err := filepath.Glob(filepath.Join(dir, lib+"*.dll"))
	if err != nil {
		return nil
	}
	var matches []string
	for _, globMatch := range globMatches {
		name := filepath.Base(globMatch)
		if librarySuffixRe.MatchString(strings.TrimPrefix(name, lib)) {
			matches = append(matches, name)
		}
	}
	return matches
}

// FindBinDir searches root recursively for a directory named bin. No
// match is fatal; more than one gets a warning and the first is used.
func FindBinDir(root string) (string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "bin" {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", fmt.Errorf("packaging: cannot find bin subdirectory of %s packaging directory", root)
	}
	if len(found) > 1 {
		slog.Warn("Found more than one bin subdirectory; assuming first is the one we need",
			"root", root, "found", found)
	}
	return found[0], nil
}

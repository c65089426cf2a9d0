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
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/osutils"
)

// Fallbacks for when otool output does not show the Xalan dependency
// where we expect it.
const (
	fallbackXalanDir    = "/usr/local/opt/xalan-c/lib/"
	fallbackXalanLib    = "libxalan-c.112.dylib"
	fallbackXalanMsgLib = "libxalanMsg.112.dylib"
)

// packageDarwin builds the Mac app bundle and wraps it in a .dmg disk
// image. The bundle structure is:
//
//	<name>_<version>.app
//	└── Contents
//	    ├── Info.plist
//	    ├── Frameworks   <── private shared libraries and frameworks
//	    ├── MacOS        <── the executable
//	    ├── Plugins      <── loadable Qt plugins
//	    └── Resources
//
// macdeployqt does most of the heavy lifting (bundling Qt frameworks,
// rewriting library search paths, stripping); the main thing it misses
// is libxalanMsg, an indirect dependency via libxalan-c, because it
// does not run its dependency checking recursively.
func (p *Packager) packageDarwin(ctx context.Context) error {
	slog.Debug("Mac Packaging")

	slog.Debug("Creating Mac app bundle top-level directories")
	bundleDirName := config.ProjectName + "_" + p.cfg.VersionString + ".app"
	contentsDir := filepath.Join(p.paths.PlatformPackagesDir, bundleDirName, "Contents")
	binDir := filepath.Join(contentsDir, "MacOS")
	frameworksDir := filepath.Join(contentsDir, "Frameworks")
	pluginsDir := filepath.Join(contentsDir, "Plugins")
	for _, dir := range []string{binDir, frameworksDir, pluginsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	// Simplest to copy the whole Resources tree the install staged; we
	// want everything inside it.
	slog.Debug("Copying Resources")
	err := osutils.CopyDir(
		filepath.Join(p.paths.PlatformPackagesDir, "usr", "local", "Contents", "Resources"),
		filepath.Join(contentsDir, "Resources"),
	)
	if err != nil {
		return err
	}

	slog.Debug("Copying Information Property List file")
	err = osutils.CopyFile(
		filepath.Join(p.paths.BuildDir, "Info.plist"),
		filepath.Join(contentsDir, "Info.plist"),
	)
	if err != nil {
		return err
	}

	// Meson's local-install layout put the executable in usr/local/bin.
	slog.Debug("Copying executable")
	err = osutils.CopyFile(
		filepath.Join(p.paths.PlatformPackagesDir, "usr", "local", "bin", config.CapitalisedProjectName),
		filepath.Join(binDir, config.CapitalisedProjectName),
	)
	if err != nil {
		return err
	}

	if err := p.bundleXalanMsg(ctx, binDir, frameworksDir); err != nil {
		return err
	}

	// macdeployqt is best run in the directory containing the .app
	// folder, otherwise the dmg name it creates is wrong. The
	// -executable argument alters the executable's library search path
	// so it finds the Qt libraries inside the bundle.
	slog.Debug("Running macdeployqt")
	err = p.runner.Run(ctx, executil.Cmd{
		Name: "macdeployqt",
		Args: []string{
			bundleDirName,
			"-verbose=2",
			"-executable=" + bundleDirName + "/Contents/MacOS/" + config.CapitalisedProjectName,
			"-dmg",
		},
		Dir: p.paths.PlatformPackagesDir,
	})
	if err != nil {
		return err
	}

	dmgFileName := strings.TrimSuffix(bundleDirName, ".app") + ".dmg"
	slog.Info("Created disk image", "file", dmgFileName, "dir", p.paths.PlatformPackagesDir)

	if err := p.verifyDiskImage(ctx, dmgFileName); err != nil {
		return err
	}

	return p.distribute(p.paths.PlatformPackagesDir, dmgFileName)
}

// bundleXalanMsg locates libxalanMsg and copies it into the bundle's
// Frameworks directory, where libxalan-c will be after macdeployqt has
// run. otool -L on the executable tells us where libxalan-c lives;
// libxalanMsg sits in the same directory.
func (p *Packager) bundleXalanMsg(ctx context.Context, binDir, frameworksDir string) error {
	slog.Debug("Running otool before macdeployqt")
	otoolOutputExe, err := p.runner.Output(ctx, executil.Cmd{
		Name: "otool",
		Args: []string{"-L", config.CapitalisedProjectName},
		Dir:  binDir,
	})
	if err != nil {
		return err
	}
	slog.Debug("otool -L output", "output", otoolOutputExe)

	xalanDir, xalanLibName := ParseOtoolForLib(otoolOutputExe, "libxalan-c")
	if xalanDir == "" {
		slog.Warn("Could not find libxalan dependency in executable, assuming default location",
			"dir", fallbackXalanDir)
		xalanDir = fallbackXalanDir
		xalanLibName = fallbackXalanLib
	}

	// libxalanMsg is typically listed as a relative path dependency of
	// libxalan-c (eg '@rpath/libxalanMsg.112.dylib'), so otool on the
	// Xalan library gives us its exact file name.
	slog.Debug("Running otool -L", "lib", xalanLibName)
	otoolOutputXalan, err := p.runner.Output(ctx, executil.Cmd{
		Name: "otool",
		Args: []string{"-L", xalanDir + xalanLibName},
	})
	if err != nil {
		return err
	}
	_, xalanMsgLibName := ParseOtoolForLib(otoolOutputXalan, "libxalanMsg")
	if xalanMsgLibName == "" {
		slog.Warn("Could not find libxalanMsg dependency, assuming default name",
			"lib", fallbackXalanMsgLib)
		xalanMsgLibName = fallbackXalanMsgLib
	}

	slog.Debug("Copying library", "from", xalanDir+xalanMsgLibName, "to", frameworksDir)
	return osutils.CopyFile(xalanDir+xalanMsgLibName, filepath.Join(frameworksDir, xalanMsgLibName))
}

// verifyDiskImage mounts the disk image and unmounts it again, as a
// check that the image is well formed. (The contents cannot be
// modified while mounted, only inspected.)
func (p *Packager) verifyDiskImage(ctx context.Context, dmgFileName string) error {
	slog.Debug("Running hdiutil to mount disk image", "file", dmgFileName)
	err := p.runner.Run(ctx, executil.Cmd{
		Name: "hdiutil",
		Args: []string{"attach", "-verbose", dmgFileName},
		Dir:  p.paths.PlatformPackagesDir,
	})
	if err != nil {
		return err
	}
	mountPoint := "/Volumes/" + strings.TrimSuffix(dmgFileName, ".dmg")
	slog.Debug("Running hdiutil to unmount disk image", "mountPoint", mountPoint)
	return p.runner.Run(ctx, executil.Cmd{
		Name: "hdiutil",
		Args: []string{"detach", "-verbose", mountPoint},
		Dir:  p.paths.PlatformPackagesDir,
	})
}

// ParseOtoolForLib scans `otool -L` output for a dependency on the
// named library and returns its directory (with trailing slash) and
// file name, or two empty strings when the library is not listed. A
// typical dependency line looks like
//
//	/usr/local/opt/xalan-c/lib/libxalan-c.112.dylib (compatibility version 112.0.0, ...)
func ParseOtoolForLib(otoolOutput, libName string) (dir, fileName string) {
	re := regexp.MustCompile(`(?m)^\s*(\S+/)(` + regexp.QuoteMeta(libName) + `\S*\.dylib)`)
	m := re.FindStringSubmatch(otoolOutput)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

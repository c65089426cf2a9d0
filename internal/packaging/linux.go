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

	"go.elara.ws/vercmp"

	"github.com/kegsmith/bt/internal/changelog"
	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/osutils"
)

// rpmlint 2.0 (May 2021) changed the call syntax, so older versions
// are skipped rather than invoked wrongly.
const minRpmlintVersion = "2.0.0"

// packageLinux builds the .deb and .rpm packages. The script assumes a
// Debian-based build machine; x86_64 and amd64 are the same thing, the
// two package formats just name it differently.
func (p *Packager) packageLinux(ctx context.Context) error {
	slog.Debug("Linux Packaging")

	// Meson is geared up for building and installing locally, so it
	// installs to /usr/local/bin, /usr/local/share, etc. Packaged
	// software goes in /usr/bin, /usr/share, etc instead, so move
	// everything in the staging tree up a level.
	if err := p.relocateUsrLocal(); err != nil {
		return err
	}

	// Debian and RPM both want debugging information stripped from the
	// executable.
	binDir := filepath.Join(p.paths.PlatformPackagesDir, "usr", "bin")
	slog.Debug("Stripping debug symbols")
	err := p.runner.Run(ctx, executil.Cmd{
		Name: "strip",
		Args: []string{
			"--strip-unneeded",
			"--remove-section=.comment",
			"--remove-section=.note",
			filepath.Join(binDir, config.ProjectName),
		},
	})
	if err != nil {
		return err
	}

	entries, err := p.changeLogEntries()
	if err != nil {
		return err
	}

	if err := p.buildDeb(ctx, entries); err != nil {
		return err
	}
	return p.buildRPM(ctx, entries)
}

func (p *Packager) relocateUsrLocal() error {
	targetDir := filepath.Join(p.paths.PlatformPackagesDir, "usr")
	sourceDir := filepath.Join(targetDir, "local")
	slog.Debug("Moving usr/local files to usr", "dir", p.paths.PlatformPackagesDir)
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		err := osutils.Move(filepath.Join(sourceDir, e.Name()), filepath.Join(targetDir, e.Name()))
		if err != nil {
			return err
		}
	}
	return os.Remove(sourceDir)
}

// changeLogEntries parses the markdown change log named in the build
// configuration.
func (p *Packager) changeLogEntries() ([]changelog.Entry, error) {
	fl, err := os.Open(p.cfg.ChangeLogUncompressed)
	if err != nil {
		return nil, err
	}
	defer fl.Close()
	return changelog.Parse(fl)
}

// buildDeb builds the Debian binary package. We are not shipping a
// Debian source package (Debian wants those built with an
// old-fashioned makefile, and there are easier routes to our source
// code), which means skipping the dh-make tooling and assembling the
// install tree by hand:
//
//	debbuild
//	└── <name>-<version>-1_amd64
//	    ├── DEBIAN
//	    │   └── control
//	    └── usr
//	        ├── bin/...
//	        └── share/...
func (p *Packager) buildDeb(ctx context.Context, entries []changelog.Entry) error {
	slog.Debug("Creating debian package top-level directories")
	debPackageDirName := config.ProjectName + "-" + p.cfg.VersionString + "-1_amd64"
	debbuildDir := filepath.Join(p.paths.PlatformPackagesDir, "debbuild")
	debDir := filepath.Join(debbuildDir, debPackageDirName)
	controlDir := filepath.Join(debDir, "DEBIAN")
	if err := os.MkdirAll(controlDir, 0o755); err != nil {
		return err
	}

	slog.Debug("Copying deb package contents")
	usrDir := filepath.Join(p.paths.PlatformPackagesDir, "usr")
	if err := osutils.CopyDir(usrDir, filepath.Join(debDir, "usr")); err != nil {
		return err
	}

	slog.Debug("Copying deb package control file")
	err := changelog.StripControlFile(
		filepath.Join(p.paths.BuildDir, "control"),
		filepath.Join(controlDir, "control"),
	)
	if err != nil {
		return err
	}

	// Every Debian package that provides /usr/share/doc/<pkg> must
	// install a changelog there as changelog.Debian.gz, world readable.
	slog.Debug("Generating compressed changelog")
	docDir := filepath.Join(debDir, "usr", "share", "doc", config.ProjectName)
	if err := os.MkdirAll(docDir, 0o755); err != nil {
		return err
	}
	err = changelog.WriteDebianGz(entries, config.ProjectName, p.cfg.PackageMaintainer,
		filepath.Join(docDir, "changelog.Debian.gz"))
	if err != nil {
		return err
	}

	// Debian wants man pages gzipped at maximum compression with no
	// gzip header timestamp (what `gzip -9n` would produce).
	slog.Debug("Compressing man page")
	manPage := filepath.Join(debDir, "usr", "share", "man", "man1", config.ProjectName+".1")
	if err := osutils.GzipFile(manPage, manPage+".gz", 0o644); err != nil {
		return err
	}
	if err := os.Remove(manPage); err != nil {
		return err
	}

	// The package file takes its name from the directory we pass to
	// dpkg-deb, plus '.deb'.
	slog.Info("Generating deb package")
	err = p.runner.Run(ctx, executil.Cmd{
		Name: "dpkg-deb",
		Args: []string{"--build", "--root-owner-group", debPackageDirName},
		Dir:  debbuildDir,
	})
	if err != nil {
		return err
	}
	debPackageName := debPackageDirName + ".deb"

	// lintian checks the package very strictly. Some warnings only
	// matter for packages shipping with Debian itself, but we try to
	// fix as many as possible.
	slog.Info("Running lintian to check the created deb package for errors and warnings")
	err = p.runner.Run(ctx, executil.Cmd{
		Name: "lintian",
		Args: []string{"--no-tag-display-limit", debPackageName},
		Dir:  debbuildDir,
	})
	if err != nil {
		return err
	}

	return p.distribute(debbuildDir, debPackageName)
}

// buildRPM builds the RPM binary package. As with the deb, this is a
// binary-only build that sidesteps the full RPM build system:
//
//	rpmbuild
//	├── SPECS
//	│   └── rpm.spec
//	└── BUILDROOT
//	    └── usr/...
func (p *Packager) buildRPM(ctx context.Context, entries []changelog.Entry) error {
	slog.Debug("Creating rpm package top-level directories")
	rpmDir := filepath.Join(p.paths.PlatformPackagesDir, "rpmbuild")
	specsDir := filepath.Join(rpmDir, "SPECS")
	buildrootDir := filepath.Join(rpmDir, "BUILDROOT")
	if err := os.MkdirAll(specsDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(buildrootDir, 0o755); err != nil {
		return err
	}

	slog.Debug("Copying rpm package contents")
	usrDir := filepath.Join(p.paths.PlatformPackagesDir, "usr")
	if err := osutils.CopyDir(usrDir, filepath.Join(buildrootDir, "usr")); err != nil {
		return err
	}

	// The spec file gets the same comment and fold stripping as the
	// Debian control file, then the change log is appended to it: for
	// RPM the change log lives in the spec file, introduced by the
	// %changelog macro on its last line.
	slog.Debug("Copying rpm spec file")
	specPath := filepath.Join(specsDir, "rpm.spec")
	err := changelog.StripControlFile(filepath.Join(p.paths.BuildDir, "rpm.spec"), specPath)
	if err != nil {
		return err
	}
	spec, err := os.OpenFile(specPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, werr := spec.WriteString(changelog.RenderRPM(entries, p.cfg.PackageMaintainer))
	if cerr := spec.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return werr
	}

	// RPM packages want man pages compressed with bzip2. The standard
	// library can only read bzip2, not write it, so the bzip2 command
	// does the work.
	slog.Debug("Compressing man page")
	manPage := filepath.Join(buildrootDir, "usr", "share", "man", "man1", config.ProjectName+".1")
	err = p.runner.Run(ctx, executil.Cmd{
		Name: "bzip2",
		Args: []string{"--compress", manPage},
	})
	if err != nil {
		return err
	}

	// The _topdir macro stops rpmbuild putting its output under the
	// current user's home directory.
	slog.Info("Generating rpm package")
	err = p.runner.Run(ctx, executil.Cmd{
		Name: "rpmbuild",
		Args: []string{
			"--define=_topdir " + rpmDir,
			"--noclean",
			"--buildroot", buildrootDir,
			"--bb", specPath,
		},
	})
	if err != nil {
		return err
	}

	rpmOutputDir := filepath.Join(rpmDir, "RPMS", "x86_64")
	rpmPackageName := config.ProjectName + "-" + p.cfg.VersionString + "-1.x86_64.rpm"

	if err := p.runRpmlint(ctx, filepath.Join(rpmOutputDir, rpmPackageName)); err != nil {
		return err
	}

	return p.distribute(rpmOutputDir, rpmPackageName)
}

// runRpmlint is the lintian equivalent exercise for RPMs. It is
// skipped on rpmlint versions before 2.0, whose call syntax differs.
// Warning suppressions (with explanations) live in
// packaging/linux/rpmLintfilters.toml.
func (p *Packager) runRpmlint(ctx context.Context, rpmPath string) error {
	rawVersion, err := p.runner.Output(ctx, executil.Cmd{
		Name: "rpmlint",
		Args: []string{"--version"},
	})
	if err != nil {
		return err
	}
	version := TrimRpmlintVersion(rawVersion)
	slog.Debug("rpmlint version", "raw", rawVersion, "trimmed", version)
	if vercmp.Compare(version, minRpmlintVersion) < 0 {
		slog.Info("Skipping invocation of rpmlint as installed version is too old (< 2.0)", "version", version)
		return nil
	}

	slog.Info("Running rpmlint to check the created rpm package for errors and warnings", "version", version)
	return p.runner.Run(ctx, executil.Cmd{
		Name: "rpmlint",
		Args: []string{
			"--config", filepath.Join(p.paths.BaseDir, "packaging", "linux"),
			rpmPath,
		},
	})
}

var rpmlintVersionPrefixRe = regexp.MustCompile(`^[^0-9]*`)

// TrimRpmlintVersion normalises `rpmlint --version` output. Older
// versions print eg "rpmlint version 1.11", newer ones just "2.2.0".
func TrimRpmlintVersion(raw string) string {
	return strings.ReplaceAll(rpmlintVersionPrefixRe.ReplaceAllString(strings.TrimSpace(raw), ""), "_", ".")
}

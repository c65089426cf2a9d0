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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/shlex"
	"github.com/urfave/cli/v2"

	"github.com/kegsmith/bt/internal/cliutils"
	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/deps"
	"github.com/kegsmith/bt/internal/dlcache"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/gitutils"
	"github.com/kegsmith/bt/internal/meson"
)

func SetupCmd() *cli.Command {
	return &cli.Command{
		Name:      "setup",
		Usage:     "Set up the Meson build directory; with 'all', install dependencies first",
		ArgsUsage: "[all]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "meson-args",
				Usage: "Extra arguments to pass to meson setup",
			},
		},
		Action: func(c *cli.Context) error {
			installDeps := false
			if c.Args().Len() > 0 {
				if c.Args().Len() > 1 || c.Args().First() != "all" {
					return cliutils.FormatCliExit(
						fmt.Sprintf("unexpected arguments: %q (only 'all' is accepted)", c.Args().Slice()), nil)
				}
				installDeps = true
			}

			paths, err := config.NewPaths()
			if err != nil {
				return cliutils.FormatCliExit("unable to locate project directories", err)
			}
			runner := executil.System()

			rec := newRunRecorder(paths, "setup")
			sErr := runSetup(c, runner, paths, installDeps)
			rec.finish(sErr)
			return sErr
		},
	}
}

func runSetup(c *cli.Context, runner executil.Runner, paths *config.Paths, installDeps bool) error {
	ctx := c.Context

	if installDeps {
		cache := dlcache.New(filepath.Join(paths.CacheDir, "dl"))
		if err := deps.NewInstaller(runner, paths, cache).Install(ctx); err != nil {
			return cliutils.FormatCliExit("failed to install dependencies", err)
		}
	}

	m, err := meson.Find(ctx, runner)
	if err != nil {
		return cliutils.FormatCliExit("meson is required", err)
	}
	slog.Debug("Found meson", "exe", m.Exe, "version", m.Version)

	// If this is a git checkout (as opposed to an unpacked source
	// tarball), apply the project git preferences.
	if paths.HasGitDir() {
		slog.Info("Setting up " + config.CapitalisedProjectName + " git preferences")
		if err := gitutils.ConfigureWhitespace(paths.BaseDir); err != nil {
			return cliutils.FormatCliExit("failed to configure git", err)
		}
		if err := gitutils.EnablePreCommitHook(paths.GitDir); err != nil {
			return cliutils.FormatCliExit("failed to enable git hook", err)
		}
		err := gitutils.EnsureSubmodules(ctx, runner, paths.BaseDir, paths.SubmodulesDir, config.NumSubmodules)
		if err != nil {
			return cliutils.FormatCliExit("failed to fetch git submodules", err)
		}
	}

	// The best clue that setup has already run (rather than, say, the
	// user having created an empty build directory by hand) is the
	// meson-info.json file that setup creates for IDE integration.
	runMesonSetup := true
	infoFile := filepath.Join(paths.BuildDir, "meson-info", "meson-info.json")
	if _, err := os.Stat(infoFile); err == nil {
		slog.Info("Meson build directory appears to be already set up", "dir", paths.BuildDir)
		// Resetting is usually only needed after edits to defaults in
		// meson.build. Non-interactive runs (eg CI) keep the existing
		// directory.
		reset, err := cliutils.YesNoPrompt("Do you want to completely reset the build directory?",
			c.Bool("interactive"), false)
		if err != nil {
			return cliutils.FormatCliExit("prompt failed", err)
		}
		if reset {
			// Removing the directory we are standing in leaves the shell
			// with a dangling cwd, so step out to the project root first.
			if isWithin(paths.BuildDir, mustGetwd()) {
				if err := os.Chdir(paths.BaseDir); err != nil {
					return cliutils.FormatCliExit("failed to leave build directory", err)
				}
			}
			slog.Info("Removing existing Meson build directory", "dir", paths.BuildDir)
			if err := os.RemoveAll(paths.BuildDir); err != nil {
				return cliutils.FormatCliExit("failed to remove build directory", err)
			}
		} else {
			runMesonSetup = false
		}
	}

	if runMesonSetup {
		extraArgs, err := mesonExtraArgs(c.String("meson-args"))
		if err != nil {
			return cliutils.FormatCliExit("bad meson arguments", err)
		}
		slog.Info("Setting up meson build directory", "dir", paths.BuildDir)
		if err := m.Setup(ctx, paths.BaseDir, paths.BuildDir, extraArgs...); err != nil {
			return cliutils.FormatCliExit("meson setup failed", err)
		}
		slog.Info("Finished setting up Meson build. " +
			"Note that the warnings above about path separator and optimization level are expected!")
	}

	slog.Debug("Setup done")
	printNextSteps(paths)
	return nil
}

// mesonExtraArgs merges the --meson-args flag with the BT_MESON_ARGS
// environment variable, splitting both with shell quoting rules.
func mesonExtraArgs(flagValue string) ([]string, error) {
	args, err := shlex.Split(config.Env().MesonArgs)
	if err != nil {
		return nil, err
	}
	flagArgs, err := shlex.Split(flagValue)
	if err != nil {
		return nil, err
	}
	return append(args, flagArgs...), nil
}

func printNextSteps(paths *config.Paths) {
	relBuildDir, err := filepath.Rel(mustGetwd(), paths.BuildDir)
	if err != nil {
		relBuildDir = paths.BuildDir
	}
	fmt.Println()
	fmt.Println("You can now build, test, install and run " + config.CapitalisedProjectName +
		" with the following commands:")
	fmt.Println("   cd " + relBuildDir)
	fmt.Println("   meson compile")
	fmt.Println("   meson test")
	if runtime.GOOS == "linux" {
		fmt.Println("   sudo meson install")
	} else {
		fmt.Println("   meson install")
	}
	fmt.Println("   " + config.ProjectName)
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// isWithin reports whether path is dir itself or inside it. A plain
// prefix test is not enough: mbuild2 is not inside mbuild.
func isWithin(dir, path string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator))
}

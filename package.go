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
	"github.com/urfave/cli/v2"

	"github.com/kegsmith/bt/internal/cliutils"
	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/executil"
	"github.com/kegsmith/bt/internal/meson"
	"github.com/kegsmith/bt/internal/packaging"
)

func PackageCmd() *cli.Command {
	return &cli.Command{
		Name:  "package",
		Usage: "Build the distributable packages for this platform",
		Action: func(c *cli.Context) error {
			paths, err := config.NewPaths()
			if err != nil {
				return cliutils.FormatCliExit("unable to locate project directories", err)
			}
			runner := executil.System()

			m, err := meson.Find(c.Context, runner)
			if err != nil {
				return cliutils.FormatCliExit("meson is required", err)
			}

			p := packaging.New(runner, paths, m)
			rec := newRunRecorder(paths, "package")
			if err := p.Run(c.Context); err != nil {
				rec.finish(err)
				return cliutils.FormatCliExit("packaging failed", err)
			}
			rec.addArtifacts(p.Artifacts())
			rec.finish(nil)
			return nil
		},
	}
}

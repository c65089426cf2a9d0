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
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kegsmith/bt/internal/cliutils"
	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/history"
	"github.com/kegsmith/bt/internal/packaging"
)

func HistoryCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent setup and packaging runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   10,
				Usage:   "Maximum number of runs to show",
			},
		},
		Action: func(c *cli.Context) error {
			paths, err := config.NewPaths()
			if err != nil {
				return cliutils.FormatCliExit("unable to locate project directories", err)
			}
			store, err := history.Open(historyDBPath(paths))
			if err != nil {
				return cliutils.FormatCliExit("unable to open history database", err)
			}
			defer store.Close()

			runs, err := store.Runs(c.Int("limit"))
			if err != nil {
				return cliutils.FormatCliExit("unable to read history", err)
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet")
				return nil
			}
			for _, run := range runs {
				status := "ok"
				if !run.Succeeded {
					status = "FAILED"
				}
				fmt.Printf("%s  %-7s  %-7s  %s  (bt %s, %s)\n",
					run.StartedAt.Format(time.RFC3339), run.Command, status,
					run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
					run.Version, run.Platform)
				artifacts, err := store.Artifacts(run.ID)
				if err != nil {
					return cliutils.FormatCliExit("unable to read history", err)
				}
				for _, a := range artifacts {
					fmt.Printf("   %s  %d bytes  sha256:%s\n", a.FileName, a.SizeBytes, a.SHA256)
				}
			}
			return nil
		},
	}
}

func historyDBPath(paths *config.Paths) string {
	return filepath.Join(paths.CacheDir, "history.db")
}

// runRecorder writes a run (and its artifacts) to the history
// database. History is auxiliary: failures to record are logged as
// warnings and never fail the build itself.
type runRecorder struct {
	store     *history.Store
	command   string
	started   time.Time
	artifacts []history.Artifact
}

func newRunRecorder(paths *config.Paths, command string) *runRecorder {
	rec := &runRecorder{command: command, started: time.Now()}
	store, err := history.Open(historyDBPath(paths))
	if err != nil {
		slog.Warn("Unable to open history database", "err", err)
		return rec
	}
	rec.store = store
	return rec
}

func (r *runRecorder) addArtifacts(paths []string) {
	for _, path := range paths {
		sum, err := packaging.Sha256OfFile(path)
		if err != nil {
			slog.Warn("Unable to hash artifact for history", "path", path, "err", err)
			continue
		}
		fi, err := os.Stat(path)
		if err != nil {
			slog.Warn("Unable to stat artifact for history", "path", path, "err", err)
			continue
		}
		r.artifacts = append(r.artifacts, history.Artifact{
			FileName:  filepath.Base(path),
			SHA256:    sum,
			SizeBytes: fi.Size(),
		})
	}
}

func (r *runRecorder) finish(runErr error) {
	if r.store == nil {
		return
	}
	defer r.store.Close()
	runID, err := r.store.RecordRun(history.Run{
		Command:    r.command,
		Version:    config.Version,
		Platform:   runtime.GOOS,
		StartedAt:  r.started,
		FinishedAt: time.Now(),
		Succeeded:  runErr == nil,
	})
	if err != nil {
		slog.Warn("Unable to record run in history", "err", err)
		return
	}
	for _, a := range r.artifacts {
		if err := r.store.AddArtifact(runID, a); err != nil {
			slog.Warn("Unable to record artifact in history", "err", err)
		}
	}
}

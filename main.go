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
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/kegsmith/bt/internal/cliutils"
	"github.com/kegsmith/bt/internal/config"
	"github.com/kegsmith/bt/internal/logger"
)

func GetApp() *cli.App {
	return &cli.App{
		Name:  "bt",
		Usage: "Build and package the " + config.CapitalisedProjectName + " desktop application",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Log only warnings and errors",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Value:   isatty.IsTerminal(os.Stdin.Fd()),
				Usage:   "Enable interactive questions and prompts",
			},
		},
		Commands: []*cli.Command{
			SetupCmd(),
			PackageCmd(),
			HistoryCmd(),
			VersionCmd(),
		},
		Before: func(c *cli.Context) error {
			switch {
			case c.Bool("verbose") && c.Bool("quiet"):
				return cliutils.FormatCliExit("--verbose and --quiet are mutually exclusive", nil)
			case c.Bool("verbose"):
				setLogLevel("DEBUG")
			case c.Bool("quiet"):
				setLogLevel("WARN")
			}
			return nil
		},
		EnableBashCompletion: true,
		ExitErrHandler: func(cCtx *cli.Context, err error) {
			cliutils.HandleExitCoder(err)
		},
	}
}

func setLogLevel(newLevel string) {
	level := slog.LevelInfo
	switch newLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	logger.SetLevel(level)
}

func main() {
	logger.SetupDefault()
	setLogLevel(config.Env().LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := GetApp()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		slog.Error("Error while running app", "err", err)
		os.Exit(1)
	}
}

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

// Package executil runs the external toolchains bt orchestrates.
// Every subprocess in bt goes through a Runner so the failure policy
// stays uniform: a failed invocation aborts the whole run.
package executil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Cmd describes one external command invocation.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
}

func (c Cmd) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes commands. The production implementation wraps
// os/exec; tests substitute a Recorder to assert on argument lists.
type Runner interface {
	// Run executes the command, streaming its output to the user.
	Run(ctx context.Context, cmd Cmd) error
	// Output executes the command and captures its stdout.
	Output(ctx context.Context, cmd Cmd) (string, error)
}

type systemRunner struct{}

// System returns the Runner backed by os/exec.
func System() Runner {
	return systemRunner{}
}

func (systemRunner) Run(ctx context.Context, cmd Cmd) error {
	slog.Debug("Running command", "cmd", cmd.String(), "dir", cmd.Dir)
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

func (systemRunner) Output(ctx context.Context, cmd Cmd) (string, error) {
	slog.Debug("Running command", "cmd", cmd.String(), "dir", cmd.Dir)
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stderr = os.Stderr
	out, err := c.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// LookPath reports the absolute path of an executable, or an empty
// string when it is not installed.
func LookPath(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	return path
}

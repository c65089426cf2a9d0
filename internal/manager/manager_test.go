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

package manager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegsmith/bt/internal/executil"
)

func TestAPTCommands(t *testing.T) {
	rec := &executil.Recorder{}
	apt := NewAPT(rec)
	ctx := context.Background()

	require.NoError(t, apt.Sync(ctx))
	require.NoError(t, apt.Install(ctx, "meson", "ninja-build"))
	require.NoError(t, apt.Remove(ctx, "meson"))

	assert.Equal(t, [][]string{
		{"sudo", "apt", "update"},
		{"sudo", "apt", "install", "-y", "meson", "ninja-build"},
		{"sudo", "apt", "remove", "-y", "meson"},
	}, rec.Argv())
}

func TestPacmanInstallsOnePackageAtATime(t *testing.T) {
	// Installing individually makes mirror failures easier to debug
	// than one big transaction.
	rec := &executil.Recorder{}
	pacman := NewPacman(rec)

	require.NoError(t, pacman.Install(context.Background(), "base-devel", "cmake"))

	assert.Equal(t, [][]string{
		{"pacman", "-S", "--needed", "--noconfirm", "--disable-download-timeout", "base-devel"},
		{"pacman", "-S", "--needed", "--noconfirm", "--disable-download-timeout", "cmake"},
	}, rec.Argv())
}

func TestBrewInstallSkipsInstalled(t *testing.T) {
	rec := &executil.Recorder{
		Out: map[string]string{"brew": "cmake\ngit\n"},
	}
	brew := NewBrew(rec)

	require.NoError(t, brew.Install(context.Background(), "cmake", "meson"))

	// First call is `brew list`; cmake is already present so only
	// meson gets installed.
	assert.Equal(t, [][]string{
		{"brew", "list"},
		{"brew", "install", "meson"},
	}, rec.Argv())
}

func TestMacPortsInstallUsesSudo(t *testing.T) {
	rec := &executil.Recorder{}
	port := NewMacPorts(rec)

	require.NoError(t, port.Install(context.Background(), "xalanc", "xercesc3"))

	assert.Equal(t, [][]string{
		{"sudo", "port", "install", "xalanc", "xercesc3"},
	}, rec.Argv())
}

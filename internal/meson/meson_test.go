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

package meson

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegsmith/bt/internal/executil"
)

func TestAtLeast(t *testing.T) {
	m := New("meson", "0.61.5", nil)
	assert.True(t, m.AtLeast("0.60.0"))
	assert.True(t, m.AtLeast("0.61.5"))
	assert.False(t, m.AtLeast("0.62.0"))
}

func TestDistAllowDirtyGate(t *testing.T) {
	// Meson 0.62 turned uncommitted changes from a warning into a
	// fatal error unless --allow-dirty is given; older versions do not
	// know the flag.
	rec := &executil.Recorder{}
	m := New("meson", "0.62.0", rec)
	require.NoError(t, m.Dist(context.Background(), "/tmp/mbuild"))

	rec2 := &executil.Recorder{}
	m2 := New("meson", "0.61.5", rec2)
	require.NoError(t, m2.Dist(context.Background(), "/tmp/mbuild"))

	assert.Equal(t, [][]string{{"meson", "dist", "--no-tests", "--allow-dirty"}}, rec.Argv())
	assert.Equal(t, [][]string{{"meson", "dist", "--no-tests"}}, rec2.Argv())
	assert.Equal(t, "/tmp/mbuild", rec.Cmds[0].Dir)
}

func TestSetupAndInstall(t *testing.T) {
	rec := &executil.Recorder{}
	m := New("meson", "1.3.0", rec)

	require.NoError(t, m.Setup(context.Background(), "/src", "/src/mbuild", "-Dbuildtype=release"))
	require.NoError(t, m.Install(context.Background(), "/src/mbuild", "/src/mbuild/packages/linux"))

	assert.Equal(t, [][]string{
		{"meson", "setup", "/src/mbuild", "/src", "-Dbuildtype=release"},
		{"meson", "install", "--destdir", "/src/mbuild/packages/linux"},
	}, rec.Argv())
	assert.Equal(t, "/src/mbuild", rec.Cmds[1].Dir)
}

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

package gitutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegsmith/bt/internal/executil"
)

// populateSubmodule creates a submodule directory, non-empty when
// checkedOut is set.
func populateSubmodule(t *testing.T, submodulesDir, name string, checkedOut bool) {
	t.Helper()
	dir := filepath.Join(submodulesDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if checkedOut {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o644))
	}
}

func TestEnsureSubmodulesFetchesWhenMissing(t *testing.T) {
	baseDir := t.TempDir()
	submodulesDir := filepath.Join(baseDir, "third-party")
	populateSubmodule(t, submodulesDir, "libbacktrace", true)
	populateSubmodule(t, submodulesDir, "valijson", false)

	rec := &executil.Recorder{}
	require.NoError(t, EnsureSubmodules(context.Background(), rec, baseDir, submodulesDir, 2))

	assert.Equal(t, [][]string{
		{"git", "submodule", "init"},
		{"git", "submodule", "update"},
	}, rec.Argv())
	for _, cmd := range rec.Cmds {
		assert.Equal(t, baseDir, cmd.Dir)
	}
}

func TestEnsureSubmodulesSkipsWhenPresent(t *testing.T) {
	baseDir := t.TempDir()
	submodulesDir := filepath.Join(baseDir, "third-party")
	populateSubmodule(t, submodulesDir, "libbacktrace", true)
	populateSubmodule(t, submodulesDir, "valijson", true)

	rec := &executil.Recorder{}
	require.NoError(t, EnsureSubmodules(context.Background(), rec, baseDir, submodulesDir, 2))
	assert.Empty(t, rec.Cmds)
}

func TestEnsureSubmodulesFetchesWhenDirAbsent(t *testing.T) {
	// A tarball without the submodules directory at all still triggers
	// the fetch.
	baseDir := t.TempDir()
	rec := &executil.Recorder{}
	require.NoError(t, EnsureSubmodules(context.Background(), rec, baseDir,
		filepath.Join(baseDir, "third-party"), 2))
	assert.Len(t, rec.Cmds, 2)
}

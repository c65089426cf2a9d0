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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindLibraryMatches(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"libfoo.dll",
		"libfoo-12.dll",
		"libfoo16.dll",
		"libfoobar.dll", // prefix match but not a version suffix
		"libfoo.dll.a",  // import library, not a DLL
		"libstdc++-6.dll",
		"libstdc++.dll.a",
	} {
		touch(t, filepath.Join(dir, name))
	}

	matches := FindLibraryMatches(dir, "libfoo")
	assert.ElementsMatch(t, []string{"libfoo.dll", "libfoo-12.dll", "libfoo16.dll"}, matches)

	// The '+' characters must not be treated as part of a pattern.
	matches = FindLibraryMatches(dir, "libstdc++")
	assert.Equal(t, []string{"libstdc++-6.dll"}, matches)

	assert.Empty(t, FindLibraryMatches(dir, "libmissing"))
}

func TestFindBinDir(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "msys64", "mingw64", "bin", "kegsmith.exe"))

	dir, err := FindBinDir(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "msys64", "mingw64", "bin"), dir)
}

func TestFindBinDirMissing(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "msys64", "mingw64", "lib", "libfoo.a"))

	_, err := FindBinDir(root)
	assert.Error(t, err)
}

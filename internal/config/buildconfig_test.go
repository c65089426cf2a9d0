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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildConfig(t *testing.T) {
	buildDir := t.TempDir()
	toml := `CONFIG_VERSION_STRING = "3.0.2"
CONFIG_APPLICATION_NAME_LC = "kegsmith"
CONFIG_PACKAGE_MAINTAINER = "Joe Packager <joe@example.com>"
CONFIG_CHANGE_LOG_UNCOMPRESSED = "/src/CHANGES.markdown"
CONFIG_SHARED_LIBRARY_PATHS = ["/usr/lib/libxalan-c.so", "/usr/lib/libxerces-c.so"]
`
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "config.toml"), []byte(toml), 0o644))

	cfg, err := LoadBuildConfig(buildDir)
	require.NoError(t, err)
	assert.Equal(t, "3.0.2", cfg.VersionString)
	assert.Equal(t, "kegsmith", cfg.ApplicationNameLC)
	assert.Equal(t, "Joe Packager <joe@example.com>", cfg.PackageMaintainer)
	assert.Equal(t, "/src/CHANGES.markdown", cfg.ChangeLogUncompressed)
	assert.Equal(t, []string{"/usr/lib/libxalan-c.so", "/usr/lib/libxerces-c.so"}, cfg.SharedLibraryPaths)
}

func TestLoadBuildConfigMissingFile(t *testing.T) {
	_, err := LoadBuildConfig(t.TempDir())
	assert.Error(t, err)
}

func TestFindBaseDir(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "meson.build"), []byte("project('kegsmith')\n"), 0o644))
	nested := filepath.Join(base, "src", "model")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	dir, err := findBaseDir(nested)
	require.NoError(t, err)
	assert.Equal(t, base, dir)
}

func TestFindBaseDirNotFound(t *testing.T) {
	_, err := findBaseDir(t.TempDir())
	assert.ErrorIs(t, err, ErrNoBaseDir)
}

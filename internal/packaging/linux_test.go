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

	"github.com/kegsmith/bt/internal/config"
)

func TestTrimRpmlintVersion(t *testing.T) {
	// Older versions of rpmlint print a prefix, newer ones do not.
	assert.Equal(t, "1.11", TrimRpmlintVersion("rpmlint version 1.11"))
	assert.Equal(t, "2.2.0", TrimRpmlintVersion("2.2.0"))
	assert.Equal(t, "2.2.0", TrimRpmlintVersion("2.2.0\n"))
}

func TestRelocateUsrLocal(t *testing.T) {
	platformDir := t.TempDir()
	touch(t, filepath.Join(platformDir, "usr", "local", "bin", "kegsmith"))
	touch(t, filepath.Join(platformDir, "usr", "local", "share", "applications", "kegsmith.desktop"))

	p := &Packager{paths: &config.Paths{PlatformPackagesDir: platformDir}}
	require.NoError(t, p.relocateUsrLocal())

	assert.FileExists(t, filepath.Join(platformDir, "usr", "bin", "kegsmith"))
	assert.FileExists(t, filepath.Join(platformDir, "usr", "share", "applications", "kegsmith.desktop"))
	_, err := os.Stat(filepath.Join(platformDir, "usr", "local"))
	assert.True(t, os.IsNotExist(err))
}

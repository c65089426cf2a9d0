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

package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripControlRemovesComments(t *testing.T) {
	in := "# This comment would upset dpkg-deb\n" +
		"Package: kegsmith\n" +
		"# Another comment\n" +
		"Architecture: amd64\n"

	var out strings.Builder
	require.NoError(t, StripControl(&out, strings.NewReader(in)))
	assert.Equal(t, "Package: kegsmith\nArchitecture: amd64\n", out.String())
}

func TestStripControlUnfoldsLines(t *testing.T) {
	in := "Depends: libc6,     \\\n" +
		"         libqt5core5a, \\\n" +
		"         libqt5sql5\n" +
		"Maintainer: Joe Packager\n"

	var out strings.Builder
	require.NoError(t, StripControl(&out, strings.NewReader(in)))
	// Folded lines are joined with repeated spaces collapsed.
	assert.Equal(t,
		"Depends: libc6, libqt5core5a, libqt5sql5\nMaintainer: Joe Packager\n",
		out.String())
}

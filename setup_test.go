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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWithin(t *testing.T) {
	dir := filepath.Join("/", "project", "mbuild")
	assert.True(t, isWithin(dir, dir))
	assert.True(t, isWithin(dir, filepath.Join(dir, "meson-info")))
	assert.False(t, isWithin(dir, filepath.Join("/", "project")))
	// A sibling directory sharing the name as a prefix is not inside.
	assert.False(t, isWithin(dir, filepath.Join("/", "project", "mbuild2")))
}

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

package dlcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	cache := New(t.TempDir())
	url := "https://example.com/boost_1_84_0.tar.bz2"

	_, ok := cache.Get(url)
	assert.False(t, ok)

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "boost_1_84_0.tar.bz2")
	require.NoError(t, os.WriteFile(src, []byte("tarball"), 0o644))

	cached, err := cache.Put(url, src)
	require.NoError(t, err)
	assert.FileExists(t, cached)
	// Put moves the file into the cache.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	got, ok := cache.Get(url)
	require.True(t, ok)
	assert.Equal(t, cached, got)
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "tarball", string(data))

	// A different URL is a different entry.
	_, ok = cache.Get("https://example.com/other.tar.bz2")
	assert.False(t, ok)
}

func TestGetIgnoresMissingPayload(t *testing.T) {
	dir := t.TempDir()
	cache := New(dir)
	url := "https://example.com/file.zip"

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "file.zip")
	require.NoError(t, os.WriteFile(src, []byte("zip"), 0o644))
	cached, err := cache.Put(url, src)
	require.NoError(t, err)

	// If the payload disappears the manifest alone is not a hit.
	require.NoError(t, os.Remove(cached))
	_, ok := cache.Get(url)
	assert.False(t, ok)
}

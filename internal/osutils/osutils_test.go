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

package osutils

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, Move(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyFilePreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "script.sh")
	dst := filepath.Join(dir, "copy.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

	require.NoError(t, CopyFile(src, dst))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), fi.Mode().Perm())
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "usr", "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "usr", "bin", "kegsmith"), []byte("elf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "readme"), []byte("hi"), 0o644))

	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, CopyDir(src, dst))

	assert.FileExists(t, filepath.Join(dst, "usr", "bin", "kegsmith"))
	assert.FileExists(t, filepath.Join(dst, "readme"))
	fi, err := os.Stat(filepath.Join(dst, "usr", "bin", "kegsmith"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), fi.Mode().Perm())
}

func TestCountDirsIn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "one"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "two"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), nil, 0o644))

	n, err := CountDirsIn(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGzipFileIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kegsmith.1")
	require.NoError(t, os.WriteFile(src, []byte(".TH KEGSMITH 1\n"), 0o644))

	first := filepath.Join(dir, "first.gz")
	second := filepath.Join(dir, "second.gz")
	require.NoError(t, GzipFile(src, first, 0o644))
	require.NoError(t, GzipFile(src, second, 0o644))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	// No name or mtime in the header, so two runs match byte for byte.
	assert.Equal(t, a, b)

	fl, err := os.Open(first)
	require.NoError(t, err)
	defer fl.Close()
	zr, err := gzip.NewReader(fl)
	require.NoError(t, err)
	defer zr.Close()
	assert.Empty(t, zr.Name)
	assert.True(t, zr.ModTime.IsZero())
}

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

// Package dlcache keeps previously downloaded files so that repeated
// setup runs do not refetch multi-hundred-megabyte tarballs.
package dlcache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const manifestName = "manifest.bin"

// Manifest records what a cache entry holds.
type Manifest struct {
	URL        string    `msgpack:"url"`
	FileName   string    `msgpack:"fileName"`
	Downloaded time.Time `msgpack:"downloaded"`
}

// Cache is a download cache rooted at a directory. Each entry lives in
// a subdirectory named after the SHA-256 of the normalized source URL
// and carries a msgpack manifest beside the payload.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// keyDir returns the entry directory for a URL.
func (c *Cache) keyDir(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

// Get returns the cached file path for a URL, or ok=false when the URL
// has not been cached.
func (c *Cache) Get(url string) (path string, ok bool) {
	dir := c.keyDir(url)
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return "", false
	}
	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return "", false
	}
	path = filepath.Join(dir, m.FileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Put moves a freshly downloaded file into the cache and returns its
// new path.
func (c *Cache) Put(url, srcPath string) (string, error) {
	dir := c.keyDir(url)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	fileName := filepath.Base(srcPath)
	dst := filepath.Join(dir, fileName)
	if err := os.Rename(srcPath, dst); err != nil {
		return "", err
	}
	m := Manifest{
		URL:        url,
		FileName:   fileName,
		Downloaded: time.Now(),
	}
	data, err := msgpack.Marshal(&m)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), data, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

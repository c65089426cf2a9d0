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

// Package dl downloads the third-party artifacts setup needs (Boost
// source tarballs, NSIS plugin zips) with caching and checksum
// verification.
package dl

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/PuerkitoBio/purell"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/crypto/blake2b"

	"github.com/kegsmith/bt/internal/dlcache"
)

// Options configures a single download.
type Options struct {
	URL         string
	Destination string

	// Hash, when set, is the expected digest of the payload encoded as
	// hex. Algorithm selects the hash function (sha256 is the default).
	Hash      string
	Algorithm string

	// Cache, when non-nil, is consulted before the network and updated
	// after a successful download.
	Cache *dlcache.Cache
}

// Download fetches opts.URL into opts.Destination and returns the
// local path of the downloaded file.
func Download(ctx context.Context, opts Options) (string, error) {
	url, err := purell.NormalizeURLString(opts.URL, purell.FlagsUsuallySafeGreedy)
	if err != nil {
		return "", fmt.Errorf("dl: normalize %q: %w", opts.URL, err)
	}

	if opts.Cache != nil {
		if cached, ok := opts.Cache.Get(url); ok {
			// The cached payload gets the same verification as a fresh
			// download; a corrupted entry triggers a re-fetch.
			err := verifyFile(cached, opts.Hash, opts.Algorithm)
			if err != nil {
				slog.Warn("Discarding cached download", "url", url, "err", err)
			} else {
				slog.Info("Using cached download", "url", url, "path", cached)
				if err := os.MkdirAll(opts.Destination, 0o755); err != nil {
					return "", err
				}
				dst := filepath.Join(opts.Destination, filepath.Base(cached))
				if err := copyFile(cached, dst); err != nil {
					return "", err
				}
				return dst, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dl: %s: unexpected status %s", url, res.Status)
	}

	name := responseFilename(res)
	if err := os.MkdirAll(opts.Destination, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(opts.Destination, name)
	fl, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	h, err := newHash(opts.Algorithm)
	if err != nil {
		fl.Close()
		return "", err
	}

	bar := progressbar.DefaultBytes(res.ContentLength, "Downloading "+name)
	_, err = io.Copy(io.MultiWriter(fl, h, bar), res.Body)
	_ = bar.Close()
	if cerr := fl.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("dl: %s: %w", url, err)
	}

	if opts.Hash != "" {
		sum := hex.EncodeToString(h.Sum(nil))
		if sum != opts.Hash {
			return "", fmt.Errorf("dl: %s: checksum mismatch (got %s, want %s)", name, sum, opts.Hash)
		}
	}

	if opts.Cache != nil {
		cached, err := opts.Cache.Put(url, dst)
		if err != nil {
			return "", err
		}
		if err := copyFile(cached, dst); err != nil {
			return "", err
		}
	}
	return dst, nil
}

// verifyFile checks a file against the expected digest. An empty
// wantHash means no verification was requested.
func verifyFile(path, wantHash, algorithm string) error {
	if wantHash == "" {
		return nil
	}
	h, err := newHash(algorithm)
	if err != nil {
		return err
	}
	fl, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fl.Close()
	if _, err := io.Copy(h, fl); err != nil {
		return err
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if sum != wantHash {
		return fmt.Errorf("dl: %s: checksum mismatch (got %s, want %s)", filepath.Base(path), sum, wantHash)
	}
	return nil
}

func newHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "", "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "blake2b":
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("dl: unsupported hash algorithm %q", algorithm)
	}
}

// responseFilename parses the Content-Disposition header of an HTTP
// response to find the payload's file name, falling back to the last
// element of the URL path.
func responseFilename(res *http.Response) string {
	_, params, err := mime.ParseMediaType(res.Header.Get("Content-Disposition"))
	if err == nil {
		if filename, ok := params["filename"]; ok {
			return filename
		}
	}
	return path.Base(res.Request.URL.Path)
}

func copyFile(src, dst string) error {
	if src == dst {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

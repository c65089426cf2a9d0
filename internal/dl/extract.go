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

package dl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v4"
)

// Extract unpacks an archive into destDir. Format detection is based
// on the file name and contents, so .tar.gz, .tar.bz2 and .zip all
// work without the caller caring which one it got.
func Extract(ctx context.Context, archivePath, destDir string) error {
	fl, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer fl.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	format, input, err := archiver.Identify(filepath.Base(archivePath), fl)
	if err != nil {
		return fmt.Errorf("dl: identify %s: %w", archivePath, err)
	}
	suffix := format.Name()

	switch format := format.(type) {
	case archiver.Extractor:
		return format.Extract(ctx, input, nil, func(ctx context.Context, f archiver.File) error {
			return writeEntry(destDir, f)
		})
	case archiver.Decompressor:
		rc, err := format.OpenReader(input)
		if err != nil {
			return err
		}
		defer rc.Close()

		path := filepath.Join(destDir, filepath.Base(archivePath))
		path = strings.TrimSuffix(path, suffix)
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	default:
		return fmt.Errorf("dl: %s: not an archive", archivePath)
	}
}

func writeEntry(destDir string, f archiver.File) error {
	path := filepath.Join(destDir, f.NameInArchive)

	if f.IsDir() {
		return os.MkdirAll(path, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	fr, err := f.Open()
	if err != nil {
		return err
	}
	defer fr.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, fr); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// RenderDebian renders entries in the Debian changelog format
// (deb-changelog(5)):
//
//	kegsmith (3.0.2-1) unstable; urgency=medium
//
//	  * Fix crash on startup [#123]
//
//	 -- Joe Packager <joe@example.com>  Wed, 26 Oct 2022 10:10:10 +0100
//
// Entries with no changes still appear, as every released version must
// be present in the changelog.
func RenderDebian(entries []Entry, packageName, maintainer string) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s (%s-1) unstable; urgency=medium\n\n", packageName, e.Version)
		for _, change := range e.Changes {
			fmt.Fprintf(&sb, "  * %s\n", change)
		}
		if len(e.Changes) == 0 {
			sb.WriteString("  * No changes recorded\n")
		}
		fmt.Fprintf(&sb, "\n -- %s  %s\n", maintainer, e.Timestamp)
	}
	return sb.String()
}

// WriteDebianGz writes the Debian changelog gzip-compressed at maximum
// compression with no embedded name or timestamp, so rebuilding the
// package gives byte-identical output. Debian policy wants the file
// world readable (0644).
func WriteDebianGz(entries []Entry, packageName, maintainer, path string) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	zw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		out.Close()
		return err
	}
	if _, err := io.WriteString(zw, RenderDebian(entries, packageName, maintainer)); err != nil {
		zw.Close()
		out.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

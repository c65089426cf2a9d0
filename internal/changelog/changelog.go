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

// Package changelog parses the project's markdown change log and
// renders it in the formats the Linux packaging formats demand.
//
// The markdown source looks like:
//
//	## v3.0.2
//	Minor bug fixes for the 3.0.1 release.
//
//	### New Features
//	* None
//
//	### Bug Fixes
//	* Fix crash on startup [#123]
//
//	### Release Timestamp
//	Wed, 26 Oct 2022 10:10:10 +0100
//
//	## v3.0.1
//	...
package changelog

import (
	"bufio"
	"io"
	"strings"
)

// Entry is one release's worth of changes.
type Entry struct {
	// Version is the bare version number, eg "3.0.2".
	Version string
	// Timestamp is the release timestamp exactly as written in the
	// markdown, eg "Wed, 26 Oct 2022 10:10:10 +0100".
	Timestamp string
	// Changes lists new features and bug fixes. The two are not
	// distinguished; placeholder "None" bullets are dropped.
	Changes []string
}

// Parse reads the markdown change log. Introductory headings and
// paragraphs before the first "## v" line are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	var (
		entries   []Entry
		current   *Entry
		inIntro   = true
		wantStamp = false
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		if inIntro {
			if !strings.HasPrefix(line, "## v") {
				continue
			}
			inIntro = false
		}

		if wantStamp {
			current.Timestamp = strings.TrimSpace(line)
			wantStamp = false
			continue
		}

		switch {
		case strings.HasPrefix(line, "## v"):
			if current != nil {
				entries = append(entries, *current)
			}
			current = &Entry{Version: strings.TrimPrefix(line, "## v")}
		case strings.HasPrefix(line, "* "):
			if strings.TrimSpace(line) != "* None" {
				current.Changes = append(current.Changes, strings.TrimPrefix(line, "* "))
			}
		case strings.HasPrefix(line, "### Release Timestamp"):
			wantStamp = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries, nil
}

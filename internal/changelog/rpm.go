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
	"fmt"
	"regexp"
	"strings"
)

// rpmDateRe rewrites "Wed, 26 Oct 2022 10:10:10 +0100" as
// "Wed Oct 26 2022": comma out, day and month swapped, time dropped.
var rpmDateRe = regexp.MustCompile(`, (\d{1,2}) ([A-Z][a-z][a-z]) (\d\d\d\d).*$`)

// RenderRPM renders entries in the format the %changelog section of an
// RPM spec file wants:
//
//	* Wed Jun 14 2003 Joe Packager <joe at gmail.com> - 1.0-2
//	- Added README file (#42).
//
// The "-1" package release number is appended to each version so
// rpmlint does not complain about incoherent-version-in-changelog.
// Entries with no changes are skipped entirely.
func RenderRPM(entries []Entry, maintainer string) string {
	var sb strings.Builder
	for _, e := range entries {
		if len(e.Changes) == 0 {
			continue
		}
		date := rpmDateRe.ReplaceAllString(e.Timestamp, " $2 $1 $3")
		fmt.Fprintf(&sb, "* %s %s - %s-1\n", date, maintainer, e.Version)
		for _, change := range e.Changes {
			fmt.Fprintf(&sb, "- %s\n", change)
		}
	}
	return sb.String()
}

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

package deps

import (
	"regexp"
	"strings"
)

// ParseGPPVersion extracts the version number from `g++ --version`
// output. Only the first line matters (the rest is the copyright
// notice) and it looks like
//
//	g++ (Ubuntu 11.4.0-1ubuntu1~22.04) 11.4.0
//
// so the version is the last space-separated field.
func ParseGPPVersion(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

var boostLibVersionRe = regexp.MustCompile(`#define BOOST_LIB_VERSION "([0-9_]*)"`)

// ParseBoostLibVersion extracts the Boost version from the contents of
// boost/version.hpp. BOOST_LIB_VERSION is a string with underscores
// instead of dots and without the patch level when that is 0, eg
// "1_79" for Boost 1.79.0. The underscores become dots so the result
// compares as a normal version number. Returns "" when the macro is
// not present.
func ParseBoostLibVersion(header string) string {
	m := boostLibVersionRe.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], "_", ".")
}

// EnvironmentFromUname returns the MSYS2 environment name from
// `uname -a` output, which looks like
//
//	MINGW64_NT-10.0-19044 Matt-Virt-Win 3.4.3.x86_64 ... Msys
//
// The environment is the part before the first underscore.
func EnvironmentFromUname(output string) string {
	env, _, _ := strings.Cut(output, "_")
	return env
}

// underscores converts a dotted version number to its underscore form,
// as used in Boost tarball names ("1.84.0" becomes "1_84_0").
func underscores(version string) string {
	return strings.ReplaceAll(version, ".", "_")
}

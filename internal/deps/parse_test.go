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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGPPVersion(t *testing.T) {
	out := "g++ (Ubuntu 11.4.0-1ubuntu1~22.04) 11.4.0\n" +
		"Copyright (C) 2021 Free Software Foundation, Inc.\n" +
		"This is free software; see the source for copying conditions.\n"
	assert.Equal(t, "11.4.0", ParseGPPVersion(out))

	assert.Equal(t, "", ParseGPPVersion(""))
}

func TestParseBoostLibVersion(t *testing.T) {
	header := `//  Boost version.hpp configuration header file
#define BOOST_VERSION 107900
#define BOOST_LIB_VERSION "1_79"
`
	// BOOST_LIB_VERSION drops the patch level when it is zero.
	assert.Equal(t, "1.79", ParseBoostLibVersion(header))

	assert.Equal(t, "1.23.45", ParseBoostLibVersion(`#define BOOST_LIB_VERSION "1_23_45"`))
	assert.Equal(t, "", ParseBoostLibVersion("#define BOOST_VERSION 107900"))
}

func TestEnvironmentFromUname(t *testing.T) {
	out := "MINGW64_NT-10.0-19044 Matt-Virt-Win 3.4.3.x86_64 2023-01-11 20:20 UTC x86_64 Msys"
	assert.Equal(t, "MINGW64", EnvironmentFromUname(out))

	assert.Equal(t, "MINGW32", EnvironmentFromUname("MINGW32_NT-10.0-19044 host ..."))
}

func TestUnderscores(t *testing.T) {
	assert.Equal(t, "1_84_0", underscores("1.84.0"))
}

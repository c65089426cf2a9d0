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

package config

import (
	"sync"

	"github.com/caarlos0/env"
)

// Version is the bt tool version, overridable at link time.
var Version = "0.3.1"

// Project constants. There is some inevitable duplication with
// meson.build, kept to a minimum: everything per-release (version,
// maintainer, shared library lists) comes from the config.toml that
// Meson exports instead.
const (
	ProjectName            = "kegsmith"
	CapitalisedProjectName = "Kegsmith"
	ProjectURL             = "https://github.com/kegsmith/kegsmith/"

	// BuildDirName is the Meson build directory, deliberately not
	// named "build" so it cannot be confused with packaging/.
	BuildDirName = "mbuild"

	// SubmodulesDirName holds the git submodules (libbacktrace and
	// valijson at present).
	SubmodulesDirName = "third-party"
	NumSubmodules     = 2
)

// EnvConfig holds the environment variables bt reacts to.
type EnvConfig struct {
	LogLevel  string `env:"BT_LOG_LEVEL" envDefault:"INFO"`
	BaseDir   string `env:"BT_BASE_DIR"`
	BoostRoot string `env:"BOOST_ROOT"`
	MesonArgs string `env:"BT_MESON_ARGS"`
}

var (
	envCfg     *EnvConfig
	envCfgOnce sync.Once
)

// Env returns the process environment configuration. Parse errors are
// impossible for a struct of plain strings, so they are ignored.
func Env() *EnvConfig {
	envCfgOnce.Do(func() {
		envCfg = &EnvConfig{}
		_ = env.Parse(envCfg)
	})
	return envCfg
}

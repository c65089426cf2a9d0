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
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// BuildConfig is the build information Meson exports into
// <builddir>/config.toml at the direction of meson.build. It saves us
// duplicating meson.build settings in this tool.
type BuildConfig struct {
	VersionString         string   `toml:"CONFIG_VERSION_STRING"`
	ApplicationNameLC     string   `toml:"CONFIG_APPLICATION_NAME_LC"`
	PackageMaintainer     string   `toml:"CONFIG_PACKAGE_MAINTAINER"`
	ChangeLogUncompressed string   `toml:"CONFIG_CHANGE_LOG_UNCOMPRESSED"`
	SharedLibraryPaths    []string `toml:"CONFIG_SHARED_LIBRARY_PATHS"`
}

// LoadBuildConfig reads the Meson-exported configuration from the
// given build directory.
func LoadBuildConfig(buildDir string) (*BuildConfig, error) {
	fl, err := os.Open(filepath.Join(buildDir, "config.toml"))
	if err != nil {
		return nil, err
	}
	defer fl.Close()

	cfg := &BuildConfig{}
	if err := toml.NewDecoder(fl).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

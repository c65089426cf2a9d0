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

package packaging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteSha256Sum creates <fileName>.sha256sum beside fileName in dir.
// The output matches what `sha256sum <fileName>` would print when run
// from inside dir: just the file name, not its path on the build
// machine, so the file verifies cleanly wherever it is downloaded to.
func WriteSha256Sum(dir, fileName string) error {
	sum, err := Sha256OfFile(filepath.Join(dir, fileName))
	if err != nil {
		return err
	}
	line := fmt.Sprintf("%s  %s\n", sum, fileName)
	return os.WriteFile(filepath.Join(dir, fileName+".sha256sum"), []byte(line), 0o644)
}

// Sha256OfFile returns the hex-encoded SHA-256 digest of a file.
func Sha256OfFile(path string) (string, error) {
	fl, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fl.Close()
	h := sha256.New()
	if _, err := io.Copy(h, fl); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

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
	"bufio"
	"io"
	"os"
	"strings"
)

// StripControl copies a Debian control file (or RPM spec file),
// removing comment lines and unfolding backslash-continued lines.
//
// Comments are theoretically allowed in control files but have caused
// problems with the package generators, so they come out here. Some
// fields we keep folded across lines in the source for readability are
// not allowed to be folded in the generated file, so folded lines are
// joined with runs of spaces collapsed.
func StripControl(w io.Writer, r io.Reader) error {
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasSuffix(line, "\\") {
			bw.WriteString(line)
			bw.WriteByte('\n')
			continue
		}
		folded := ""
		for strings.HasSuffix(line, "\\") {
			folded += strings.TrimSuffix(line, "\\")
			if !sc.Scan() {
				break
			}
			line = sc.Text()
		}
		if !strings.HasSuffix(line, "\\") {
			folded += line
		}
		bw.WriteString(strings.Join(strings.Fields(folded), " "))
		bw.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

// StripControlFile applies StripControl from one path to another.
func StripControlFile(srcPath, dstPath string) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if err := StripControl(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

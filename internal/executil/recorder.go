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

package executil

import "context"

// Recorder is a Runner for tests. It records every command and serves
// canned stdout keyed by command name.
type Recorder struct {
	Cmds []Cmd
	// Out maps command name to the stdout Output should return.
	Out map[string]string
	// Fail maps command name to the error Run/Output should return.
	Fail map[string]error
}

func (r *Recorder) Run(_ context.Context, cmd Cmd) error {
	r.Cmds = append(r.Cmds, cmd)
	if r.Fail != nil {
		if err, ok := r.Fail[cmd.Name]; ok {
			return err
		}
	}
	return nil
}

func (r *Recorder) Output(_ context.Context, cmd Cmd) (string, error) {
	r.Cmds = append(r.Cmds, cmd)
	if r.Fail != nil {
		if err, ok := r.Fail[cmd.Name]; ok {
			return "", err
		}
	}
	if r.Out != nil {
		return r.Out[cmd.Name], nil
	}
	return "", nil
}

// Argv returns the recorded invocations as flat argument lists.
func (r *Recorder) Argv() [][]string {
	out := make([][]string, len(r.Cmds))
	for i, c := range r.Cmds {
		out[i] = append([]string{c.Name}, c.Args...)
	}
	return out
}

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

package cliutils

import (
	"github.com/AlecAivazis/survey/v2"
)

// YesNoPrompt asks the user a yes or no question, using def as the
// default answer. In non-interactive mode the default is returned
// without prompting.
func YesNoPrompt(msg string, interactive, def bool) (bool, error) {
	if !interactive {
		return def, nil
	}
	var answer bool
	err := survey.AskOne(
		&survey.Confirm{
			Message: msg,
			Default: def,
		},
		&answer,
	)
	return answer, err
}

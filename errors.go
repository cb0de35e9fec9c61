/*
Copyright © 2019 the simrepo authors.
This file is part of simrepo.

simrepo is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

simrepo is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with simrepo.  If not, see <http://www.gnu.org/licenses/>.
*/

package simrepo

import "fmt"

// InvalidInputTypeError is returned when ParseParams is given something
// other than a file path or an io.Reader.
type InvalidInputTypeError struct {
	Value interface{}
}

func (e *InvalidInputTypeError) Error() string {
	return fmt.Sprintf("simrepo: parameter file must be a path or an io.Reader, not %T", e.Value)
}

// MalformedLineError is returned when a non-empty line in a parameter file
// has no "key: value" separator. It carries the offending line and the
// source it came from.
type MalformedLineError struct {
	Line   string
	Source string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("simrepo: couldn't split %q in %s", e.Line, e.Source)
}

// UnsupportedComplexityError is returned when a parameter file declares a
// complexity that matches no registered model family. It aborts the
// whole repository build.
type UnsupportedComplexityError struct {
	Complexity string
	Dir        string
}

func (e *UnsupportedComplexityError) Error() string {
	return fmt.Sprintf("simrepo: no model family registered for complexity %q in %s", e.Complexity, e.Dir)
}

// MissingFieldError is returned when a parameter file for a recognized
// model family lacks a field the family requires.
type MissingFieldError struct {
	Field string
	ExpID string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("simrepo: experiment %s: parameter file is missing required field %q", e.ExpID, e.Field)
}

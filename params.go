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

// Package simrepo indexes a tree of earth-system-model simulation output
// into queryable catalogs of experiments.
//
// Every directory in a repository base directory is taken to be one
// simulation. A directory carrying an "${EXPID}.parameters" file is sorted
// into the catalog for the model family its "complexity" field names;
// directories without one become generic experiments.
package simrepo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Value is one parameter value: a single string when its key occurred once
// in the source file, or an ordered list of strings when it occurred more
// than once. Order follows the top-down order of the file.
type Value struct {
	vals []string
}

// IsList reports whether the key occurred more than once in the source.
func (v Value) IsList() bool { return len(v.vals) > 1 }

// Len returns the number of values collected for the key.
func (v Value) Len() int { return len(v.vals) }

// Scalar returns the single value, or false if the key occurred more than
// once (or never).
func (v Value) Scalar() (string, bool) {
	if len(v.vals) == 1 {
		return v.vals[0], true
	}
	return "", false
}

// List returns the values as a list, coercing a scalar to a one-element
// list. The returned slice is a copy.
func (v Value) List() []string {
	out := make([]string, len(v.vals))
	copy(out, v.vals)
	return out
}

func (v Value) String() string { return strings.Join(v.vals, ",") }

// Params holds the contents of a parameter file, mapping each key to the
// value or values declared for it.
type Params map[string]Value

// Get returns the value for key and whether the key was present.
func (p Params) Get(key string) (Value, bool) {
	v, ok := p[key]
	return v, ok
}

// ParseParams turns a parameter file into a Params mapping.
//
// The parameter file convention keeps track of what is in the simulation
// repository: one "key: value" declaration per line, where repeated keys
// enumerate list-valued fields such as the output file inventory. src may
// be a path to the file or an io.Reader; any other type results in an
// InvalidInputTypeError.
//
// Each line is stripped of surrounding whitespace and skipped if empty.
// The remainder must contain a ":"; the split happens on the first one
// only, and a line without a colon aborts the whole parse with a
// MalformedLineError. All space characters are removed from the right-hand
// side, interior ones included.
func ParseParams(src interface{}) (Params, error) {
	logrus.Debug("loading params")
	var (
		r      io.Reader
		source string
	)
	switch s := src.(type) {
	case string:
		f, err := os.Open(s)
		if err != nil {
			return nil, fmt.Errorf("simrepo: opening parameter file: %v", err)
		}
		defer f.Close()
		r = f
		source = s
	case io.Reader:
		r = s
		source = fmt.Sprintf("%T", s)
	default:
		return nil, &InvalidInputTypeError{Value: src}
	}
	return parseParamLines(r, source)
}

func parseParamLines(r io.Reader, source string) (Params, error) {
	acc := make(map[string][]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		logrus.Debug(line)
		if line == "" {
			continue
		}
		i := strings.Index(line, ":")
		if i < 0 {
			return nil, &MalformedLineError{Line: line, Source: source}
		}
		k := line[:i]
		v := strings.Replace(line[i+1:], " ", "", -1)
		acc[k] = append(acc[k], v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("simrepo: reading %s: %v", source, err)
	}
	params := make(Params, len(acc))
	for k, vs := range acc {
		params[k] = Value{vals: vs}
	}
	return params, nil
}

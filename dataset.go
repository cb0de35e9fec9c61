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

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// A Dataset is a set of NetCDF files opened together. Variables read from
// it are combined by concatenating the per-file arrays along the leading
// record dimension, in the order the files were given. Time coordinates
// are returned raw, never decoded.
type Dataset struct {
	paths []string
	files []*os.File
	ncs   []*cdf.File
}

// OpenDataset opens the given NetCDF files as one Dataset. The caller is
// responsible for calling Close.
func OpenDataset(paths ...string) (*Dataset, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("simrepo: no files to open")
	}
	d := &Dataset{paths: paths}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("simrepo: opening dataset file: %v", err)
		}
		nc, err := cdf.Open(f)
		if err != nil {
			f.Close()
			d.Close()
			return nil, fmt.Errorf("simrepo: reading netcdf header of %s: %v", p, err)
		}
		d.files = append(d.files, f)
		d.ncs = append(d.ncs, nc)
	}
	return d, nil
}

// Close closes all underlying files, returning the first error
// encountered.
func (d *Dataset) Close() error {
	var err error
	for _, f := range d.files {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	d.files = nil
	d.ncs = nil
	return err
}

// Vars returns the variables in the first file of the dataset.
func (d *Dataset) Vars() []string {
	return d.ncs[0].Header.Variables()
}

// Dims returns the dimension lengths of variable v in the combined
// dataset: the leading dimensions of all files summed, followed by the
// shared trailing dimensions.
func (d *Dataset) Dims(v string) ([]int, error) {
	var out []int
	for i, nc := range d.ncs {
		dims, err := d.varDims(v, i, nc)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = dims
			continue
		}
		if len(dims) != len(out) {
			return nil, fmt.Errorf("simrepo: variable %s: rank mismatch between %s and %s",
				v, d.paths[0], d.paths[i])
		}
		for j := 1; j < len(dims); j++ {
			if dims[j] != out[j] {
				return nil, fmt.Errorf("simrepo: variable %s: dimension mismatch between %s and %s",
					v, d.paths[0], d.paths[i])
			}
		}
		out[0] += dims[0]
	}
	return out, nil
}

// Read reads variable v from every file and concatenates the results
// along the leading dimension.
func (d *Dataset) Read(v string) (*sparse.DenseArray, error) {
	dims, err := d.Dims(v)
	if err != nil {
		return nil, err
	}
	out := sparse.ZerosDense(dims...)
	n := 0
	for i, nc := range d.ncs {
		elems, err := d.readFile(v, i, nc)
		if err != nil {
			return nil, err
		}
		n += copy(out.Elements[n:], elems)
	}
	return out, nil
}

// Stats summarizes one variable of a dataset.
type Stats struct {
	Min, Max, Mean float64
	N              int
}

// Summary computes summary statistics over the combined values of
// variable v.
func (d *Dataset) Summary(v string) (Stats, error) {
	data, err := d.Read(v)
	if err != nil {
		return Stats{}, err
	}
	x := data.Elements
	if len(x) == 0 {
		return Stats{}, fmt.Errorf("simrepo: variable %s is empty", v)
	}
	return Stats{
		Min:  floats.Min(x),
		Max:  floats.Max(x),
		Mean: floats.Sum(x) / float64(len(x)),
		N:    len(x),
	}, nil
}

// varDims returns the dimension lengths of v in file i, resolving a
// record dimension of length zero to the actual number of records.
func (d *Dataset) varDims(v string, i int, nc *cdf.File) ([]int, error) {
	dims := nc.Header.Lengths(v)
	if len(dims) == 0 {
		return nil, fmt.Errorf("simrepo: variable %s not in file %s", v, d.paths[i])
	}
	out := make([]int, len(dims))
	copy(out, dims)
	if out[0] == 0 {
		fi, err := d.files[i].Stat()
		if err != nil {
			return nil, fmt.Errorf("simrepo: sizing %s: %v", d.paths[i], err)
		}
		out[0] = int(nc.Header.NumRecs(fi.Size()))
	}
	return out, nil
}

// readFile reads all of variable v from file i as float64 elements.
func (d *Dataset) readFile(v string, i int, nc *cdf.File) ([]float64, error) {
	dims, err := d.varDims(v, i, nc)
	if err != nil {
		return nil, err
	}
	nread := 1
	for _, dim := range dims {
		nread *= dim
	}
	r := nc.Reader(v, nil, nil)
	buf := r.Zero(nread)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("simrepo: reading netcdf variable %s from %s: %v", v, d.paths[i], err)
	}
	out := make([]float64, nread)
	switch b := buf.(type) {
	case []float32:
		for j, val := range b {
			out[j] = float64(val)
		}
	case []float64:
		copy(out, b)
	case []int32:
		for j, val := range b {
			out[j] = float64(val)
		}
	case []int16:
		for j, val := range b {
			out[j] = float64(val)
		}
	default:
		return nil, fmt.Errorf("simrepo: variable %s in %s has unsupported type %T", v, d.paths[i], buf)
	}
	return out, nil
}

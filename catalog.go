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

// A Catalog exposes named entries, each resolvable to a lazy dataset
// handle. Family-specific experiment types implement it so that
// downstream dataset-loading tools can enumerate and open their output
// without knowing the family.
type Catalog interface {
	// Name identifies the catalog, e.g. the experiment ID.
	Name() string

	// Description is a human-readable account of what the catalog holds.
	Description() string

	// EntryNames lists the entry keys in a deterministic order.
	EntryNames() []string

	// Entry returns the named entry.
	Entry(name string) (*Entry, error)
}

// An Entry is one category of model output: a named, described list of
// candidate files that can be opened together as a single dataset.
// Opening is lazy; constructing an Entry touches no files.
type Entry struct {
	// Name of the entry, e.g. "echam5_main".
	Name string

	// Description of the files in the entry.
	Description string

	// Paths are the candidate output files, combined along their leading
	// record dimension when the entry is opened.
	Paths []string
}

// Open opens the entry's files as one Dataset.
func (e *Entry) Open() (*Dataset, error) {
	if len(e.Paths) == 0 {
		return nil, fmt.Errorf("simrepo: entry %s has no files", e.Name)
	}
	return OpenDataset(e.Paths...)
}

// A FamilyExperiment is an experiment recognized as belonging to a
// registered model family. It is a Catalog of its output entries and
// exposes the generic experiment record underneath.
type FamilyExperiment interface {
	Catalog
	Base() *Experiment
}

// A FamilyCatalog collects the experiments of one model family, keyed by
// experiment ID. Iteration order is insertion order.
type FamilyCatalog struct {
	name        string
	description string
	ids         []string
	exps        map[string]FamilyExperiment
}

// NewFamilyCatalog creates an empty catalog for the named family.
func NewFamilyCatalog(name, description string) *FamilyCatalog {
	return &FamilyCatalog{
		name:        name,
		description: description,
		exps:        make(map[string]FamilyExperiment),
	}
}

// Name returns the family name the catalog was created with.
func (c *FamilyCatalog) Name() string { return c.name }

// Description returns the catalog description.
func (c *FamilyCatalog) Description() string { return c.description }

// Add inserts exp, keyed by its experiment ID. Re-adding an ID replaces
// the previous experiment without changing its position.
func (c *FamilyCatalog) Add(exp FamilyExperiment) {
	id := exp.Base().ExpID
	if _, ok := c.exps[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.exps[id] = exp
}

// Get returns the experiment with the given ID.
func (c *FamilyCatalog) Get(expid string) (FamilyExperiment, bool) {
	exp, ok := c.exps[expid]
	return exp, ok
}

// IDs returns the experiment IDs in insertion order.
func (c *FamilyCatalog) IDs() []string {
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// Len returns the number of experiments in the catalog.
func (c *FamilyCatalog) Len() int { return len(c.exps) }

func (c *FamilyCatalog) String() string {
	return fmt.Sprintf("<FamilyCatalog %s with %d experiments>", c.name, len(c.exps))
}

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
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultBaseDir is the repository base directory used when neither the
// Config nor the environment provides one.
const DefaultBaseDir = "/scratch/simulation_database/incoming/"

// Environment variables consulted by NewSimulationRepository when the
// corresponding Config field is unset.
const (
	// BaseDirEnvVar overrides the default repository base directory.
	BaseDirEnvVar = "ESM_SIM_REPO_BASE_DIR"
	// BlackListEnvVar is a colon-separated list of experiment IDs to
	// exclude from classification.
	BlackListEnvVar = "ESM_SIM_REPO_BLACK_LIST"
)

// A FamilyConstructor builds a family-specific experiment from a
// classified directory and its parsed parameter file.
type FamilyConstructor func(baseDir string, params Params) (FamilyExperiment, error)

type family struct {
	marker      string
	description string
	construct   FamilyConstructor
}

// families holds the registered model families in registration order.
var families []family

// RegisterFamily registers a model family under the given complexity
// marker. A parameter file whose complexity contains the marker is
// dispatched to the constructor. Adding a family is a registration, not a
// new branch in the classifier; complexities matching no registered
// marker remain a hard failure.
func RegisterFamily(marker, description string, construct FamilyConstructor) {
	for _, f := range families {
		if f.marker == marker {
			panic(fmt.Sprintf("simrepo: family %q registered twice", marker))
		}
	}
	families = append(families, family{marker: marker, description: description, construct: construct})
}

// matchFamily finds the first registered family whose marker is contained
// in any of the complexity values.
func matchFamily(complexity Value) (family, bool) {
	for _, f := range families {
		for _, c := range complexity.List() {
			if strings.Contains(c, f.marker) {
				return f, true
			}
		}
	}
	return family{}, false
}

// Config configures construction of a SimulationRepository. Each field
// falls back to the environment and then to a hard default, so explicit
// values always win.
type Config struct {
	// BaseDir is the repository base directory. If empty, the
	// ESM_SIM_REPO_BASE_DIR environment variable is used, and failing
	// that, DefaultBaseDir.
	BaseDir string

	// Exclude lists directories to skip during classification. Entries
	// are matched against the directory basename (the experiment ID);
	// path entries are reduced to their basename first. If nil, the
	// ESM_SIM_REPO_BLACK_LIST environment variable is split on ":" with
	// empty items dropped.
	Exclude []string
}

// A SimulationRepository is the index of a whole repository tree: every
// top-level directory under the base path that is not excluded appears
// either as a generic experiment or in the catalog of the model family
// its parameter file declares.
type SimulationRepository struct {
	// BaseDir is the directory the repository was built from.
	BaseDir string

	// Experiments are the directories with no parameter file, in
	// enumeration order.
	Experiments []*Experiment

	// Families maps each registered family marker to its catalog. Every
	// registered family has a catalog, possibly empty.
	Families map[string]*FamilyCatalog
}

// NewSimulationRepository classifies every directory under the configured
// base directory into a SimulationRepository.
//
// A directory containing a "<basename>.parameters" file is dispatched on
// that file's complexity to a registered model family; a complexity
// matching no family fails the whole build with an
// UnsupportedComplexityError. A directory without a parameter file
// becomes a generic Experiment. Its input, output, scripts and executable
// subfolders are assumed, not checked.
func NewSimulationRepository(cfg Config) (*SimulationRepository, error) {
	base := cfg.BaseDir
	if base == "" {
		base = os.Getenv(BaseDirEnvVar)
	}
	if base == "" {
		base = DefaultBaseDir
	}
	exclude := cfg.Exclude
	if exclude == nil {
		for _, item := range strings.Split(os.Getenv(BlackListEnvVar), ":") {
			if item != "" {
				exclude = append(exclude, item)
			}
		}
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, item := range exclude {
		skip[filepath.Base(item)] = struct{}{}
	}

	r := &SimulationRepository{
		BaseDir:  base,
		Families: make(map[string]*FamilyCatalog, len(families)),
	}
	for _, f := range families {
		r.Families[f.marker] = NewFamilyCatalog(f.marker, f.description)
	}

	logrus.Debugf("looking at %s", base)
	children, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("simrepo: reading base directory: %v", err)
	}
	for _, child := range children {
		folder := filepath.Join(base, child.Name())
		logrus.Debugf("checking for: %s", folder)
		if !child.IsDir() {
			continue
		}
		if _, ok := skip[child.Name()]; ok {
			continue
		}
		paramFile := filepath.Join(folder, child.Name()+".parameters")
		if fi, err := os.Stat(paramFile); err == nil && !fi.IsDir() {
			params, err := ParseParams(paramFile)
			if err != nil {
				return nil, err
			}
			complexity, _ := params.Get("complexity")
			f, ok := matchFamily(complexity)
			if !ok {
				// TODO: should an unknown complexity fall back to a
				// generic Experiment instead of failing the build?
				return nil, &UnsupportedComplexityError{Complexity: complexity.String(), Dir: folder}
			}
			exp, err := f.construct(folder, params)
			if err != nil {
				return nil, err
			}
			r.Families[f.marker].Add(exp)
		} else {
			r.Experiments = append(r.Experiments, NewExperiment(folder, ""))
		}
	}
	return r, nil
}

// Cosmos returns the catalog of COSMOS experiments.
func (r *SimulationRepository) Cosmos() *FamilyCatalog {
	return r.Families[ComplexityCOSMOS]
}

func (r *SimulationRepository) String() string {
	return fmt.Sprintf("<SimulationRepository with %d experiments>", len(r.Experiments))
}

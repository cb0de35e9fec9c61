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
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// ComplexityCOSMOS is the complexity marker for the COSMOS
// (ECHAM5/JSBACH/MPIOM) model family.
const ComplexityCOSMOS = "cosmos"

// cosmosFileTags are the known output component tags of a COSMOS run.
// Each tag names one model subsystem's monthly-mean file set.
var cosmosFileTags = []string{
	"echam5_main_mm",
	"echam5_wiso_mm",
	"echam5_co2_mm",
	"jsbach_veg_mm",
	"jsbach_land_mm",
	"jsbach_main_mm",
	"jsbach_surf_mm",
}

func init() {
	RegisterFamily(ComplexityCOSMOS,
		"COSMOS experiments in the simulation repository",
		func(baseDir string, params Params) (FamilyExperiment, error) {
			return NewCOSMOSExperiment(baseDir, params)
		})
}

// A COSMOSExperiment is an experiment produced by the COSMOS coupled model.
// Beyond the generic experiment record it keeps the parsed parameter file
// and an index of the declared output files grouped by file tag.
type COSMOSExperiment struct {
	*Experiment

	// Params is the parsed parameter file for the experiment.
	Params Params

	// OriginalOutput is the declared output file list exactly as it
	// appeared in the parameter file, kept for later inspection.
	OriginalOutput []string

	entries map[string]*Entry
}

// NewCOSMOSExperiment creates a COSMOSExperiment rooted at baseDir. If
// params is nil, the experiment's parameter file is parsed from
// <baseDir>/<expid>.parameters.
//
// The declared output files are partitioned by the known COSMOS file
// tags: a file belongs to a tag when its basename contains
// "<expid>_<tag>". Matching is substring containment, so a tag that is a
// substring of another tag's identifier can claim the same file twice.
// Every known tag gets an entry, even when no file matches it. Matched
// files are re-joined under the experiment's output directory by
// basename.
func NewCOSMOSExperiment(baseDir string, params Params) (*COSMOSExperiment, error) {
	e := &COSMOSExperiment{Experiment: NewExperiment(baseDir, "")}
	if params == nil {
		var err error
		params, err = ParseParams(filepath.Join(e.BaseDir, e.ExpID+".parameters"))
		if err != nil {
			return nil, err
		}
	}
	e.Params = params

	output, ok := params.Get("output")
	if !ok {
		return nil, &MissingFieldError{Field: "output", ExpID: e.ExpID}
	}
	e.OriginalOutput = output.List()

	e.entries = make(map[string]*Entry, len(cosmosFileTags))
	for _, tag := range cosmosFileTags {
		var flist []string
		for _, f := range e.OriginalOutput {
			if strings.Contains(filepath.Base(f), e.ExpID+"_"+tag) {
				flist = append(flist, filepath.Join(e.OutputDir, filepath.Base(f)))
			}
		}
		logrus.Debugf("setting up: %s", tag)
		name := strings.Replace(tag, "_mm", "", -1)
		e.entries[tag] = &Entry{
			Name:        name,
			Description: strings.Replace(name, "_", " ", -1) + " files",
			Paths:       flist,
		}
	}
	return e, nil
}

// Name returns the experiment ID.
func (e *COSMOSExperiment) Name() string { return e.ExpID }

// Description describes the experiment for catalog listings.
func (e *COSMOSExperiment) Description() string {
	return fmt.Sprintf("COSMOS experiment %s", e.ExpID)
}

// EntryNames returns the known file tags in their declaration order,
// regardless of whether any files matched them.
func (e *COSMOSExperiment) EntryNames() []string {
	tags := make([]string, len(cosmosFileTags))
	copy(tags, cosmosFileTags)
	return tags
}

// Entry returns the output entry for the given file tag.
func (e *COSMOSExperiment) Entry(name string) (*Entry, error) {
	entry, ok := e.entries[name]
	if !ok {
		return nil, fmt.Errorf("simrepo: experiment %s has no entry %q", e.ExpID, name)
	}
	return entry, nil
}

// Files returns the output files indexed under the given file tag. The
// list is empty, not absent, for tags no file matched.
func (e *COSMOSExperiment) Files(tag string) ([]string, error) {
	entry, err := e.Entry(tag)
	if err != nil {
		return nil, err
	}
	return entry.Paths, nil
}

// Base returns the generic experiment record.
func (e *COSMOSExperiment) Base() *Experiment { return e.Experiment }

func (e *COSMOSExperiment) String() string {
	return fmt.Sprintf("<COSMOSExperiment expid=%s, base_dir=%s>", e.ExpID, e.BaseDir)
}

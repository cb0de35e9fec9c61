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
)

// Version is the version of this release of simrepo.
const Version = "0.1.0"

// An Experiment represents one simulation directory in the repository.
//
// The four subdirectory paths are always derived from BaseDir by joining
// fixed subfolder names; whether they exist on disk is not checked here.
type Experiment struct {
	// BaseDir is the top-level folder for this experiment's files in the
	// repository, with any trailing separator removed. Note that this is
	// not the original run directory on the computing cluster.
	BaseDir string

	// ExpID is the experiment ID, e.g. "conpi". It defaults to the
	// basename of BaseDir.
	ExpID string

	// ExecutableDir holds the binaries for the model components.
	ExecutableDir string
	// InputDir holds files required for model initialization.
	InputDir string
	// OutputDir holds the simulation results, normally not divided into
	// subfolders.
	OutputDir string
	// ScriptsDir holds the run and post-processing scripts.
	ScriptsDir string
}

// NewExperiment creates an Experiment rooted at baseDir. If expid is empty
// it is taken from the basename of baseDir.
func NewExperiment(baseDir, expid string) *Experiment {
	e := new(Experiment)
	e.BaseDir = strings.TrimSuffix(baseDir, string(filepath.Separator))
	if expid == "" {
		expid = filepath.Base(e.BaseDir)
	}
	e.ExpID = expid
	e.ExecutableDir = filepath.Join(e.BaseDir, "executable")
	e.InputDir = filepath.Join(e.BaseDir, "input")
	e.OutputDir = filepath.Join(e.BaseDir, "output")
	e.ScriptsDir = filepath.Join(e.BaseDir, "scripts")
	return e
}

func (e *Experiment) String() string {
	return fmt.Sprintf("<Experiment expid=%s, base_dir=%s>", e.ExpID, e.BaseDir)
}

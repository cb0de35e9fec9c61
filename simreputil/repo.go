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

package simreputil

import (
	"fmt"
	"io"

	"github.com/spf13/cast"

	"github.com/esmtools/simrepo"
)

// Repository builds the simulation repository index from the current
// configuration. Flag values left empty keep the core's environment and
// default fallbacks in effect.
func Repository() (*simrepo.SimulationRepository, error) {
	exclude, err := cast.ToStringSliceE(Cfg.Get("exclude"))
	if err != nil {
		return nil, fmt.Errorf("simrepo: reading exclude configuration: %v", err)
	}
	if len(exclude) == 0 {
		exclude = nil
	}
	return simrepo.NewSimulationRepository(simrepo.Config{
		BaseDir: Cfg.GetString("basedir"),
		Exclude: exclude,
	})
}

// PrintIndex writes a classification summary of repo to w: first the
// uncategorized experiments, then one block per model family.
func PrintIndex(w io.Writer, repo *simrepo.SimulationRepository) error {
	fmt.Fprintf(w, "Repository %s\n", repo.BaseDir)
	fmt.Fprintf(w, "%d uncategorized experiments\n", len(repo.Experiments))
	for _, exp := range repo.Experiments {
		fmt.Fprintf(w, "  %s\t%s\n", exp.ExpID, exp.BaseDir)
	}
	for _, cat := range repo.Families {
		fmt.Fprintf(w, "%d %s experiments\n", cat.Len(), cat.Name())
		for _, id := range cat.IDs() {
			exp, _ := cat.Get(id)
			fmt.Fprintf(w, "  %s\t%s\n", id, exp.Base().BaseDir)
		}
	}
	return nil
}

// familyExperiment finds expid in any of the family catalogs of repo.
func familyExperiment(repo *simrepo.SimulationRepository, expid string) (simrepo.FamilyExperiment, error) {
	for _, cat := range repo.Families {
		if exp, ok := cat.Get(expid); ok {
			return exp, nil
		}
	}
	return nil, fmt.Errorf("simrepo: no recognized experiment %q in %s", expid, repo.BaseDir)
}

// PrintEntries writes the output entries of the named experiment to w,
// one line per tag with the number of files indexed under it.
func PrintEntries(w io.Writer, repo *simrepo.SimulationRepository, expid string) error {
	exp, err := familyExperiment(repo, expid)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s\n", exp.Name(), exp.Description())
	for _, tag := range exp.EntryNames() {
		entry, err := exp.Entry(tag)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\t%s\t%d files\n", tag, entry.Description, len(entry.Paths))
	}
	return nil
}

// PrintDescription opens the dataset behind one entry of the named
// experiment and writes the dimensions and summary statistics of the
// given variables to w. With no variables given, all variables of the
// dataset are summarized.
func PrintDescription(w io.Writer, repo *simrepo.SimulationRepository, expid, tag string, vars []string) error {
	exp, err := familyExperiment(repo, expid)
	if err != nil {
		return err
	}
	entry, err := exp.Entry(tag)
	if err != nil {
		return err
	}
	data, err := entry.Open()
	if err != nil {
		return err
	}
	defer data.Close()
	if len(vars) == 0 {
		vars = data.Vars()
	}
	fmt.Fprintf(w, "%s %s: %d files\n", expid, tag, len(entry.Paths))
	for _, v := range vars {
		dims, err := data.Dims(v)
		if err != nil {
			return err
		}
		stats, err := data.Summary(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s%v\tmin=%g max=%g mean=%g\n", v, dims, stats.Min, stats.Max, stats.Mean)
	}
	return nil
}

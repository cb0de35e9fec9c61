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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// makeRepo builds a repository fixture tree. Each key of dirs is a
// directory to create; a non-empty value becomes the directory's
// parameter file.
func makeRepo(t *testing.T, dirs map[string]string) string {
	t.Helper()
	base, err := os.MkdirTemp("", "simrepo")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(base) })
	for name, params := range dirs {
		dir := filepath.Join(base, name)
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if params == "" {
			continue
		}
		f, err := os.Create(filepath.Join(dir, name+".parameters"))
		if err != nil {
			t.Fatal(err)
		}
		fmt.Fprint(f, params)
		f.Close()
	}
	return base
}

func TestNewSimulationRepository(t *testing.T) {
	base := makeRepo(t, map[string]string{
		"lgm":      "complexity: cosmos\noutput: lgm_echam5_main_mm_1.nc\n",
		"deglac":   "",
		"holocene": "",
	})

	repo, err := NewSimulationRepository(Config{BaseDir: base})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("generic experiments", func(t *testing.T) {
		if len(repo.Experiments) != 2 {
			t.Fatalf("want 2 generic experiments, got %d", len(repo.Experiments))
		}
		for _, exp := range repo.Experiments {
			if exp.ExpID != "deglac" && exp.ExpID != "holocene" {
				t.Errorf("unexpected generic experiment %s", exp.ExpID)
			}
		}
	})

	t.Run("cosmos catalog", func(t *testing.T) {
		cosmos := repo.Cosmos()
		if cosmos.Len() != 1 {
			t.Fatalf("want 1 cosmos experiment, got %d", cosmos.Len())
		}
		exp, ok := cosmos.Get("lgm")
		if !ok {
			t.Fatal("lgm not in cosmos catalog")
		}
		if exp.Base().BaseDir != filepath.Join(base, "lgm") {
			t.Errorf("base_dir = %q", exp.Base().BaseDir)
		}
	})

	t.Run("every directory in exactly one collection", func(t *testing.T) {
		if len(repo.Experiments)+repo.Cosmos().Len() != 3 {
			t.Errorf("%d generic + %d cosmos, want 3 total",
				len(repo.Experiments), repo.Cosmos().Len())
		}
	})
}

func TestNewSimulationRepositoryUnsupportedComplexity(t *testing.T) {
	base := makeRepo(t, map[string]string{
		"mystery": "complexity: unknown_model\noutput: x.nc\n",
	})
	repo, err := NewSimulationRepository(Config{BaseDir: base})
	var uerr *UnsupportedComplexityError
	if !errors.As(err, &uerr) {
		t.Fatalf("want UnsupportedComplexityError, got %v", err)
	}
	if uerr.Complexity != "unknown_model" {
		t.Errorf("complexity = %q, want unknown_model", uerr.Complexity)
	}
	if repo != nil {
		t.Error("no index should be returned on failure")
	}
}

func TestNewSimulationRepositoryMalformedParameters(t *testing.T) {
	base := makeRepo(t, map[string]string{
		"broken": "no separator\n",
	})
	_, err := NewSimulationRepository(Config{BaseDir: base})
	var merr *MalformedLineError
	if !errors.As(err, &merr) {
		t.Fatalf("want MalformedLineError, got %v", err)
	}
}

func TestNewSimulationRepositoryExclude(t *testing.T) {
	t.Run("by experiment id", func(t *testing.T) {
		base := makeRepo(t, map[string]string{"keep": "", "drop": ""})
		repo, err := NewSimulationRepository(Config{BaseDir: base, Exclude: []string{"drop"}})
		if err != nil {
			t.Fatal(err)
		}
		if len(repo.Experiments) != 1 || repo.Experiments[0].ExpID != "keep" {
			t.Errorf("experiments = %v", repo.Experiments)
		}
	})

	t.Run("path entries reduce to basename", func(t *testing.T) {
		base := makeRepo(t, map[string]string{"keep": "", "drop": ""})
		repo, err := NewSimulationRepository(Config{
			BaseDir: base,
			Exclude: []string{filepath.Join(base, "drop")},
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(repo.Experiments) != 1 || repo.Experiments[0].ExpID != "keep" {
			t.Errorf("experiments = %v", repo.Experiments)
		}
	})

	t.Run("excluding a bad directory skips its parameter file", func(t *testing.T) {
		base := makeRepo(t, map[string]string{
			"good": "",
			"bad":  "complexity: unknown_model\n",
		})
		repo, err := NewSimulationRepository(Config{BaseDir: base, Exclude: []string{"bad"}})
		if err != nil {
			t.Fatal(err)
		}
		if len(repo.Experiments) != 1 {
			t.Errorf("experiments = %v", repo.Experiments)
		}
	})
}

func TestNewSimulationRepositoryEnvironment(t *testing.T) {
	t.Run("base dir from environment", func(t *testing.T) {
		base := makeRepo(t, map[string]string{"pliocene": ""})
		t.Setenv(BaseDirEnvVar, base)
		repo, err := NewSimulationRepository(Config{})
		if err != nil {
			t.Fatal(err)
		}
		if repo.BaseDir != base {
			t.Errorf("base_dir = %q, want %q", repo.BaseDir, base)
		}
		if len(repo.Experiments) != 1 {
			t.Errorf("experiments = %v", repo.Experiments)
		}
	})

	t.Run("explicit base dir wins over environment", func(t *testing.T) {
		base := makeRepo(t, map[string]string{"pliocene": ""})
		t.Setenv(BaseDirEnvVar, "/nonexistent")
		repo, err := NewSimulationRepository(Config{BaseDir: base})
		if err != nil {
			t.Fatal(err)
		}
		if repo.BaseDir != base {
			t.Errorf("base_dir = %q, want %q", repo.BaseDir, base)
		}
	})

	t.Run("black list from environment", func(t *testing.T) {
		base := makeRepo(t, map[string]string{"keep": "", "drop1": "", "drop2": ""})
		t.Setenv(BlackListEnvVar, "drop1:drop2:")
		repo, err := NewSimulationRepository(Config{BaseDir: base})
		if err != nil {
			t.Fatal(err)
		}
		if len(repo.Experiments) != 1 || repo.Experiments[0].ExpID != "keep" {
			t.Errorf("experiments = %v", repo.Experiments)
		}
	})

	t.Run("explicit exclude wins over environment", func(t *testing.T) {
		base := makeRepo(t, map[string]string{"keep": "", "drop": ""})
		t.Setenv(BlackListEnvVar, "keep")
		repo, err := NewSimulationRepository(Config{BaseDir: base, Exclude: []string{"drop"}})
		if err != nil {
			t.Fatal(err)
		}
		if len(repo.Experiments) != 1 || repo.Experiments[0].ExpID != "keep" {
			t.Errorf("experiments = %v", repo.Experiments)
		}
	})
}

func TestNewSimulationRepositoryIgnoresPlainFiles(t *testing.T) {
	base := makeRepo(t, map[string]string{"exp1": ""})
	f, err := os.Create(filepath.Join(base, "README"))
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	repo, err := NewSimulationRepository(Config{BaseDir: base})
	if err != nil {
		t.Fatal(err)
	}
	if len(repo.Experiments) != 1 {
		t.Errorf("experiments = %v", repo.Experiments)
	}
}

func TestNewSimulationRepositoryMissingBaseDir(t *testing.T) {
	if _, err := NewSimulationRepository(Config{BaseDir: "/nonexistent/simrepo"}); err == nil {
		t.Fatal("want error")
	}
}

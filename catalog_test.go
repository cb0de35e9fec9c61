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
	"reflect"
	"strings"
	"testing"
)

func testCOSMOSExperiment(t *testing.T, baseDir string) *COSMOSExperiment {
	t.Helper()
	params, err := ParseParams(strings.NewReader("complexity: cosmos\noutput: x.nc\n"))
	if err != nil {
		t.Fatal(err)
	}
	exp, err := NewCOSMOSExperiment(baseDir, params)
	if err != nil {
		t.Fatal(err)
	}
	return exp
}

func TestFamilyCatalog(t *testing.T) {
	cat := NewFamilyCatalog("cosmos", "COSMOS experiments")
	cat.Add(testCOSMOSExperiment(t, "/repo/b"))
	cat.Add(testCOSMOSExperiment(t, "/repo/a"))
	cat.Add(testCOSMOSExperiment(t, "/repo/c"))

	t.Run("insertion order", func(t *testing.T) {
		want := []string{"b", "a", "c"}
		if !reflect.DeepEqual(cat.IDs(), want) {
			t.Errorf("ids = %v, want %v", cat.IDs(), want)
		}
	})

	t.Run("lookup by id", func(t *testing.T) {
		exp, ok := cat.Get("a")
		if !ok {
			t.Fatal("a not found")
		}
		if exp.Base().BaseDir != "/repo/a" {
			t.Errorf("base_dir = %q", exp.Base().BaseDir)
		}
		if _, ok := cat.Get("nope"); ok {
			t.Error("nope should not be found")
		}
	})

	t.Run("re-adding keeps position", func(t *testing.T) {
		cat.Add(testCOSMOSExperiment(t, "/elsewhere/a"))
		want := []string{"b", "a", "c"}
		if !reflect.DeepEqual(cat.IDs(), want) {
			t.Errorf("ids = %v, want %v", cat.IDs(), want)
		}
		if cat.Len() != 3 {
			t.Errorf("len = %d, want 3", cat.Len())
		}
		exp, _ := cat.Get("a")
		if exp.Base().BaseDir != "/elsewhere/a" {
			t.Errorf("base_dir = %q, want replacement", exp.Base().BaseDir)
		}
	})
}

func TestEntryOpenEmpty(t *testing.T) {
	e := &Entry{Name: "echam5_wiso"}
	if _, err := e.Open(); err == nil {
		t.Fatal("want error for entry with no files")
	}
}

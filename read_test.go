/*
Copyright © 2021 the pmcpost authors.
This file is part of pmcpost.

pmcpost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pmcpost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pmcpost.  If not, see <http://www.gnu.org/licenses/>.
*/

package pmcpost

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

func writeTestFile(t *testing.T, d *Dataset, path string) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := d.Write(f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWriteOpen(t *testing.T) {
	d := testDataset(t)
	path := writeTestFile(t, d, filepath.Join(t.TempDir(), "out_0001_00000001.nc"))

	d2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d2.Aero.Names(), d.Aero.Names()) {
		t.Errorf("aerosol species: %v != %v", d2.Aero.Names(), d.Aero.Names())
	}
	if !reflect.DeepEqual(d2.Aero.Labels(), d.Aero.Labels()) {
		t.Errorf("aerosol labels: %v != %v", d2.Aero.Labels(), d.Aero.Labels())
	}
	if !reflect.DeepEqual(d2.Gas.Names(), d.Gas.Names()) {
		t.Errorf("gas species: %v != %v", d2.Gas.Names(), d.Gas.Names())
	}
	checkSlice(t, "number", d2.NumConc(), d.NumConc())
	checkSlice(t, "density", d2.Density(), d.Density())
	for _, s := range d.Aero.Names() {
		want, _ := d.SpeciesMass(s)
		have, err := d2.SpeciesMass(s)
		if err != nil {
			t.Fatal(err)
		}
		checkSlice(t, s, have, want)
	}
	g, err := d2.GasMixingRatio()
	if err != nil {
		t.Fatal(err)
	}
	checkSlice(t, "gas", g.Values, []float64{1.5, 0.2})
	if g.Units != "ppb" {
		t.Errorf("gas units: %s != ppb", g.Units)
	}
	if d2.Env != d.Env {
		t.Errorf("environment: %+v != %+v", d2.Env, d.Env)
	}

	want, err := d.MixingStateIndex(DropSpecies{Water}, nil)
	if err != nil {
		t.Fatal(err)
	}
	have, err := d2.MixingStateIndex(DropSpecies{Water}, nil)
	if err != nil {
		t.Fatal(err)
	}
	checkDiversity(t, have, want)
}

func TestWriteOpenNoGas(t *testing.T) {
	aero, err := NewSpeciesMap("aerosol", []string{"OC", "BC"}, []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	mass := &sparse.DenseArray{Shape: []int{2, 2}, Elements: []float64{1, 2, 3, 4}}
	d, err := NewDataset(aero, mass, []float64{1, 1}, []float64{1000, 1800}, SpeciesMap{}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	d.Env.Time = 60
	d2, err := Open(writeTestFile(t, d, filepath.Join(t.TempDir(), "nogas.nc")))
	if err != nil {
		t.Fatal(err)
	}
	if d2.Gas.Len() != 0 {
		t.Errorf("gas species: %v", d2.Gas.Names())
	}
	if d2.Env.Time != 60 {
		t.Errorf("time: %g != 60", d2.Env.Time)
	}
	if !math.IsNaN(d2.Env.Temperature) {
		t.Errorf("temperature should be missing but is %g", d2.Env.Temperature)
	}
	var ue *UnknownSpeciesError
	if _, err := d2.GasMixingRatio("NH3"); !errors.As(err, &ue) {
		t.Errorf("want UnknownSpeciesError, have %v", err)
	}
}

// TestLoadParticleMajor checks that mass arrays stored with the particle
// dimension first are transposed.
func TestLoadParticleMajor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transposed.nc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	h := cdf.NewHeader([]string{dimAeroSpecies, dimAeroParticle}, []int{2, 3})
	h.AddVariable(dimAeroSpecies, []string{dimAeroSpecies}, []int32{0})
	h.AddAttribute(dimAeroSpecies, "names", "SO4,H2O")
	h.AddVariable(varAeroMass, []string{dimAeroParticle, dimAeroSpecies}, []float32{0})
	h.AddVariable(varNumConc, []string{dimAeroParticle}, []float64{0})
	h.AddVariable(varDensity, []string{dimAeroSpecies}, []float64{0})
	h.Define()
	cf, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	for v, data := range map[string]interface{}{
		dimAeroSpecies: []int32{1, 2},
		varAeroMass:    []float32{1, 10, 2, 20, 3, 30},
		varNumConc:     []float64{1, 1, 1},
		varDensity:     []float64{1800, 1000},
	} {
		if err := writeNCF(cf, v, data); err != nil {
			t.Fatal(err)
		}
	}
	if err := cdf.UpdateNumRecs(f); err != nil {
		t.Fatal(err)
	}

	d, err := Load(f)
	if err != nil {
		t.Fatal(err)
	}
	so4, err := d.SpeciesMass("SO4")
	if err != nil {
		t.Fatal(err)
	}
	checkSlice(t, "SO4", so4, []float64{1, 2, 3})
	water, err := d.SpeciesMass(Water)
	if err != nil {
		t.Fatal(err)
	}
	checkSlice(t, "H2O", water, []float64{10, 20, 30})
	if d.Gas.Len() != 0 {
		t.Errorf("gas species: %v", d.Gas.Names())
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		if _, err := Open(filepath.Join(t.TempDir(), "nonexistent.nc")); err == nil {
			t.Error("missing file should cause an error")
		}
	})
	t.Run("missing_variable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "incomplete.nc")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		h := cdf.NewHeader([]string{dimAeroSpecies}, []int{1})
		h.AddVariable(dimAeroSpecies, []string{dimAeroSpecies}, []int32{0})
		h.AddAttribute(dimAeroSpecies, "names", "SO4")
		h.Define()
		if _, err := cdf.Create(f, h); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(f); err == nil {
			t.Error("missing variables should cause an error")
		}
	})
}

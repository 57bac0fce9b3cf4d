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
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ctessum/cdf"
)

// Write writes d to netcdf file w, using the PartMC output layout
// so that the result can be read by Load or by other PartMC tools.
func (d *Dataset) Write(w *os.File) error {
	nPart, nSpec, nGas := d.NumParticles(), d.Aero.Len(), d.Gas.Len()
	// Zero-length dimensions would be interpreted as record dimensions.
	if nPart == 0 {
		return fmt.Errorf("pmcpost: cannot write a dataset with no particles")
	}
	if nSpec == 0 {
		return fmt.Errorf("pmcpost: cannot write a dataset with no aerosol species")
	}
	dims := []string{dimAeroSpecies, dimAeroParticle}
	lengths := []int{nSpec, nPart}
	if nGas > 0 {
		dims = append(dims, dimGasSpecies)
		lengths = append(lengths, nGas)
	}
	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "title", "PartMC particle population")
	h.AddAttribute("", "source", "pmcpost")

	h.AddVariable(dimAeroSpecies, []string{dimAeroSpecies}, []int32{0})
	h.AddAttribute(dimAeroSpecies, "names", d.Aero.String())
	h.AddAttribute(dimAeroSpecies, "description", "dummy dimension variable (no useful value) - read species names as comma-separated values from the 'names' attribute")

	h.AddVariable(dimAeroParticle, []string{dimAeroParticle}, []int32{0})
	h.AddAttribute(dimAeroParticle, "description", "dummy dimension variable (no useful value)")

	h.AddVariable(varAeroMass, []string{dimAeroSpecies, dimAeroParticle}, []float64{0})
	h.AddAttribute(varAeroMass, "unit", "kg")
	h.AddAttribute(varAeroMass, "long_name", "constituent masses of each aerosol particle")

	h.AddVariable(varNumConc, []string{dimAeroParticle}, []float64{0})
	h.AddAttribute(varNumConc, "unit", "m^{-3}")
	h.AddAttribute(varNumConc, "long_name", "number concentration for each particle")

	h.AddVariable(varDensity, []string{dimAeroSpecies}, []float64{0})
	h.AddAttribute(varDensity, "unit", "kg/m^3")
	h.AddAttribute(varDensity, "long_name", "densities of aerosol species")

	if nGas > 0 {
		h.AddVariable(dimGasSpecies, []string{dimGasSpecies}, []int32{0})
		h.AddAttribute(dimGasSpecies, "names", d.Gas.String())
		h.AddVariable(varGasMixRatio, []string{dimGasSpecies}, []float64{0})
		if d.gasUnits != "" {
			h.AddAttribute(varGasMixRatio, "unit", d.gasUnits)
		}
		h.AddAttribute(varGasMixRatio, "long_name", "mixing ratios of gas species")
	}

	env := []struct {
		name, unit string
		val        float64
	}{
		{varTime, "s", d.Env.Time},
		{varTemperature, "K", d.Env.Temperature},
		{varRelHumidity, "1", d.Env.RelHumidity},
		{varPressure, "Pa", d.Env.Pressure},
	}
	for _, e := range env {
		if math.IsNaN(e.val) {
			continue
		}
		h.AddVariable(e.name, []string{}, []float64{0})
		h.AddAttribute(e.name, "unit", e.unit)
	}
	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return fmt.Errorf("pmcpost: invalid netcdf header: %v", errs[0])
	}

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return err
	}

	type ncVar struct {
		name string
		data interface{}
	}
	writes := []ncVar{
		{dimAeroSpecies, toInt32(d.Aero.indices)},
		{dimAeroParticle, particleLabels(nPart)},
		{varAeroMass, d.mass.Elements},
		{varNumConc, d.numConc},
		{varDensity, d.density},
	}
	if nGas > 0 {
		writes = append(writes,
			ncVar{dimGasSpecies, toInt32(d.Gas.indices)},
			ncVar{varGasMixRatio, d.gasMixingRatio})
	}
	for _, e := range env {
		if !math.IsNaN(e.val) {
			writes = append(writes, ncVar{e.name, []float64{e.val}})
		}
	}
	for _, wr := range writes {
		if err := writeNCF(f, wr.name, wr.data); err != nil {
			return fmt.Errorf("pmcpost: writing variable %s to netcdf file: %v", wr.name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

func writeNCF(f *cdf.File, v string, data interface{}) error {
	end := f.Header.Lengths(v)
	if len(end) == 0 {
		// Scalars have no extent to stride over, so the writer reports
		// the end of the variable once the value is written.
		w := f.Writer(v, nil, nil)
		if w == nil {
			return fmt.Errorf("variable not in header")
		}
		if _, err := w.Write(data); err != nil && err != io.EOF {
			return err
		}
		return nil
	}
	start := make([]int, len(end))
	w := f.Writer(v, start, end)
	if w == nil {
		return fmt.Errorf("variable not in header")
	}
	_, err := w.Write(data)
	return err
}

func toInt32(v []int) []int32 {
	o := make([]int32, len(v))
	for i, x := range v {
		o[i] = int32(x)
	}
	return o
}

// particleLabels returns PartMC-style 1-based particle labels.
func particleLabels(n int) []int32 {
	o := make([]int32, n)
	for i := range o {
		o[i] = int32(i + 1)
	}
	return o
}

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
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// PartMC output variable and dimension names.
const (
	dimAeroSpecies  = "aero_species"
	dimAeroParticle = "aero_particle"
	dimGasSpecies   = "gas_species"

	varAeroMass    = "aero_particle_mass"
	varNumConc     = "aero_num_conc"
	varDensity     = "aero_density"
	varGasMixRatio = "gas_mixing_ratio"

	varTime        = "time"
	varTemperature = "temperature"
	varRelHumidity = "relative_humidity"
	varPressure    = "pressure"
)

// Open loads the PartMC output file at the given path.
func Open(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pmcpost: opening dataset: %v", err)
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Load loads a particle population from a PartMC netCDF output file.
// The whole file is read into memory.
func Load(rw cdf.ReaderWriterAt) (*Dataset, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("pmcpost: opening netcdf file: %v", err)
	}
	vars := make(map[string]struct{})
	for _, v := range f.Header.Variables() {
		vars[v] = struct{}{}
	}
	for _, v := range []string{dimAeroSpecies, varAeroMass, varNumConc, varDensity} {
		if _, ok := vars[v]; !ok {
			return nil, fmt.Errorf("pmcpost: variable %s is not in the file", v)
		}
	}

	aero, err := readSpeciesMap(f, dimAeroSpecies, "aerosol")
	if err != nil {
		return nil, err
	}
	gas := SpeciesMap{kind: "gas", lookup: map[string]int{}}
	var gasMixingRatio []float64
	var gasUnits string
	if _, ok := vars[dimGasSpecies]; ok {
		if gas, err = readSpeciesMap(f, dimGasSpecies, "gas"); err != nil {
			return nil, err
		}
		if gasMixingRatio, err = readFloat64s(f, varGasMixRatio); err != nil {
			return nil, err
		}
		gasUnits = stringAttribute(f, varGasMixRatio, "unit")
	}

	numConc, err := readFloat64s(f, varNumConc)
	if err != nil {
		return nil, err
	}
	density, err := readFloat64s(f, varDensity)
	if err != nil {
		return nil, err
	}
	mass, err := readMass(f, aero.Len(), len(numConc))
	if err != nil {
		return nil, err
	}

	d, err := NewDataset(aero, mass, numConc, density, gas, gasMixingRatio, gasUnits)
	if err != nil {
		return nil, err
	}

	for v, dst := range map[string]*float64{
		varTime:        &d.Env.Time,
		varTemperature: &d.Env.Temperature,
		varRelHumidity: &d.Env.RelHumidity,
		varPressure:    &d.Env.Pressure,
	} {
		if _, ok := vars[v]; !ok {
			continue
		}
		val, err := readFloat64s(f, v)
		if err != nil {
			return nil, err
		}
		if len(val) == 1 {
			*dst = val[0]
		}
	}
	return d, nil
}

// readMass reads the per-particle species masses, which PartMC stores
// with dimensions (aero_species, aero_particle). Files with the
// dimensions in the opposite order are transposed.
func readMass(f *cdf.File, nSpecies, nParticles int) (*sparse.DenseArray, error) {
	dims := f.Header.Dimensions(varAeroMass)
	data, err := readFloat64s(f, varAeroMass)
	if err != nil {
		return nil, err
	}
	if len(data) != nSpecies*nParticles {
		return nil, &ShapeError{What: varAeroMass, Got: len(data), Want: nSpecies * nParticles}
	}
	mass := sparse.ZerosDense(nSpecies, nParticles)
	switch {
	case len(dims) == 2 && dims[0] == dimAeroSpecies && dims[1] == dimAeroParticle:
		copy(mass.Elements, data)
	case len(dims) == 2 && dims[0] == dimAeroParticle && dims[1] == dimAeroSpecies:
		for p := 0; p < nParticles; p++ {
			for s := 0; s < nSpecies; s++ {
				mass.Set(data[p*nSpecies+s], s, p)
			}
		}
	default:
		return nil, fmt.Errorf("pmcpost: variable %s has unexpected dimensions %v", varAeroMass, dims)
	}
	return mass, nil
}

// readSpeciesMap reads a species coordinate variable and its
// comma-delimited `names` attribute.
func readSpeciesMap(f *cdf.File, v, kind string) (SpeciesMap, error) {
	names := stringAttribute(f, v, "names")
	if names == "" {
		return SpeciesMap{}, fmt.Errorf("pmcpost: variable %s is missing the `names` attribute", v)
	}
	idx, err := readFloat64s(f, v)
	if err != nil {
		return SpeciesMap{}, err
	}
	indices := make([]int, len(idx))
	for i, x := range idx {
		indices[i] = int(x)
	}
	return ParseSpeciesMap(kind, names, indices)
}

// stringAttribute returns the text attribute a of variable v, or an
// empty string if it does not exist.
func stringAttribute(f *cdf.File, v, a string) string {
	switch val := f.Header.GetAttribute(v, a).(type) {
	case string:
		return val
	case []byte:
		return string(val)
	}
	return ""
}

// readFloat64s reads the whole of variable v, converting it to float64.
func readFloat64s(f *cdf.File, v string) ([]float64, error) {
	r := f.Reader(v, nil, nil)
	if r == nil {
		return nil, fmt.Errorf("pmcpost: variable %s is not in the file", v)
	}
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("pmcpost: reading netcdf variable %s: %v", v, err)
	}
	var o []float64
	switch b := buf.(type) {
	case []float64:
		o = b
	case []float32:
		o = make([]float64, len(b))
		for i, x := range b {
			o[i] = float64(x)
		}
	case []int32:
		o = make([]float64, len(b))
		for i, x := range b {
			o[i] = float64(x)
		}
	case []int16:
		o = make([]float64, len(b))
		for i, x := range b {
			o[i] = float64(x)
		}
	case []uint8:
		o = make([]float64, len(b))
		for i, x := range b {
			o[i] = float64(x)
		}
	default:
		return nil, fmt.Errorf("pmcpost: netcdf variable %s has unsupported type %T", v, buf)
	}
	return o, nil
}

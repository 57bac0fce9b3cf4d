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
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Water is the name of the aerosol water species, which is excluded
// from "dry" quantities.
const Water = "H2O"

// Env holds the environmental state recorded alongside a particle
// population. Fields that are not present in the data are NaN.
type Env struct {
	Time        float64 // simulation time [s]
	Temperature float64 // [K]
	RelHumidity float64 // relative humidity [fraction]
	Pressure    float64 // [Pa]
}

// unknownEnv returns an Env with every field missing.
func unknownEnv() Env {
	nan := math.NaN()
	return Env{Time: nan, Temperature: nan, RelHumidity: nan, Pressure: nan}
}

// Dataset holds a particle-resolved aerosol population and the
// gas phase state from one PartMC output time.
type Dataset struct {
	// Aero and Gas map species names to their index labels.
	Aero, Gas SpeciesMap

	// Env is the environmental state at the output time.
	Env Env

	mass           *sparse.DenseArray // per-particle species mass [kg], dims (aero_species, aero_particle)
	numConc        []float64          // computational number concentration of each particle [m-3]
	density        []float64          // aerosol species density [kg m-3]
	gasMixingRatio []float64
	gasUnits       string
}

// NewDataset creates a dataset from in-memory data. mass holds
// the mass of each species in each particle [kg] and must have
// dimensions (aero.Len(), len(numConc)). numConc is the number
// concentration associated with each particle [m-3] and density is the
// density of each aerosol species [kg m-3]. gasMixingRatio holds one
// mixing ratio per gas species, in gasUnits. The inputs are copied.
func NewDataset(aero SpeciesMap, mass *sparse.DenseArray, numConc, density []float64,
	gas SpeciesMap, gasMixingRatio []float64, gasUnits string) (*Dataset, error) {
	if mass == nil || len(mass.Shape) != 2 {
		return nil, fmt.Errorf("pmcpost: particle mass must be a 2-dimensional array")
	}
	if mass.Shape[0] != aero.Len() {
		return nil, &ShapeError{What: "particle mass species dimension", Got: mass.Shape[0], Want: aero.Len()}
	}
	if mass.Shape[1] != len(numConc) {
		return nil, &ShapeError{What: "particle mass particle dimension", Got: mass.Shape[1], Want: len(numConc)}
	}
	if len(density) != aero.Len() {
		return nil, &ShapeError{What: "aerosol density", Got: len(density), Want: aero.Len()}
	}
	if len(gasMixingRatio) != gas.Len() {
		return nil, &ShapeError{What: "gas mixing ratio", Got: len(gasMixingRatio), Want: gas.Len()}
	}
	n := 1
	for _, l := range mass.Shape {
		n *= l
	}
	if len(mass.Elements) != n {
		return nil, &ShapeError{What: "particle mass elements", Got: len(mass.Elements), Want: n}
	}
	for i, rho := range density {
		if !(rho > 0) {
			return nil, fmt.Errorf("pmcpost: density of aerosol species %s is %g but should be >0",
				aero.names[i], rho)
		}
	}
	for i, n := range numConc {
		if n < 0 || math.IsNaN(n) {
			return nil, fmt.Errorf("pmcpost: number concentration of particle %d is %g", i, n)
		}
	}
	d := &Dataset{
		Aero:           aero,
		Gas:            gas,
		Env:            unknownEnv(),
		mass:           sparse.ZerosDense(append([]int(nil), mass.Shape...)...),
		numConc:        append([]float64(nil), numConc...),
		density:        append([]float64(nil), density...),
		gasMixingRatio: append([]float64(nil), gasMixingRatio...),
		gasUnits:       gasUnits,
	}
	copy(d.mass.Elements, mass.Elements)
	return d, nil
}

// NumParticles returns the number of computational particles.
func (d *Dataset) NumParticles() int { return len(d.numConc) }

// SpeciesToIndex returns the index labels of the given aerosol species.
func (d *Dataset) SpeciesToIndex(names ...string) ([]int, error) {
	return d.Aero.Indices(names...)
}

// GasSpeciesToIndex returns the index labels of the given gas species.
func (d *Dataset) GasSpeciesToIndex(names ...string) ([]int, error) {
	return d.Gas.Indices(names...)
}

// NumConc returns a copy of the per-particle number concentrations [m-3].
func (d *Dataset) NumConc() []float64 { return append([]float64(nil), d.numConc...) }

// Density returns a copy of the aerosol species densities [kg m-3].
func (d *Dataset) Density() []float64 { return append([]float64(nil), d.density...) }

// SpeciesMass returns the mass of the named species in each particle [kg].
func (d *Dataset) SpeciesMass(name string) ([]float64, error) {
	s, err := d.Aero.Position(name)
	if err != nil {
		return nil, err
	}
	n := d.NumParticles()
	o := make([]float64, n)
	copy(o, d.mass.Elements[s*n:(s+1)*n])
	return o, nil
}

// dryPositions returns the species positions included in dry or wet
// quantities.
func (d *Dataset) dryPositions(dry bool) []int {
	o := make([]int, 0, d.Aero.Len())
	for i, n := range d.Aero.names {
		if dry && n == Water {
			continue
		}
		o = append(o, i)
	}
	return o
}

// particleSum returns, for each particle, the sum over the species
// positions of f(species, mass).
func (d *Dataset) particleSum(positions []int, f func(s int, m float64) float64) []float64 {
	n := d.NumParticles()
	o := make([]float64, n)
	for _, s := range positions {
		row := d.mass.Elements[s*n : (s+1)*n]
		for p, m := range row {
			if math.IsNaN(m) {
				continue
			}
			o[p] += f(s, m)
		}
	}
	return o
}

// ParticleMass returns the total mass of each particle [kg],
// excluding water if dry is true.
func (d *Dataset) ParticleMass(dry bool) []float64 {
	return d.particleSum(d.dryPositions(dry), func(_ int, m float64) float64 { return m })
}

// ParticleVolume returns the volume of each particle [m3], calculated
// from the species masses and densities and excluding water if dry is true.
func (d *Dataset) ParticleVolume(dry bool) []float64 {
	return d.particleSum(d.dryPositions(dry), func(s int, m float64) float64 { return m / d.density[s] })
}

// ParticleDiameter returns the volume-equivalent diameter of each
// particle [m], excluding water if dry is true.
func (d *Dataset) ParticleDiameter(dry bool) []float64 {
	v := d.ParticleVolume(dry)
	for i, vv := range v {
		v[i] = math.Cbrt(vv * 6 / math.Pi)
	}
	return v
}

// weightedSum returns Σ numConc[p]*x[p] over the particles selected by mask.
func (d *Dataset) weightedSum(x []float64, mask Mask) float64 {
	var s float64
	for p, n := range d.numConc {
		if mask.Selected(p) {
			s += n * x[p]
		}
	}
	return s
}

// TotalNumberConcentration returns the total number concentration
// [m-3] of the particles selected by mask.
func (d *Dataset) TotalNumberConcentration(mask Mask) (float64, error) {
	if err := mask.check(d.NumParticles()); err != nil {
		return math.NaN(), err
	}
	if mask == nil {
		return floats.Sum(d.numConc), nil
	}
	var s float64
	for p, n := range d.numConc {
		if mask[p] {
			s += n
		}
	}
	return s, nil
}

// TotalMassConcentration returns the total aerosol mass concentration
// [kg m-3] of the particles selected by mask, excluding water if dry
// is true.
func (d *Dataset) TotalMassConcentration(dry bool, mask Mask) (float64, error) {
	if err := mask.check(d.NumParticles()); err != nil {
		return math.NaN(), err
	}
	return d.weightedSum(d.ParticleMass(dry), mask), nil
}

// BulkDensity returns the bulk density [kg m-3] of the particles selected
// by mask: their total mass concentration divided by their total volume
// concentration. Water is excluded if dry is true.
func (d *Dataset) BulkDensity(dry bool, mask Mask) (float64, error) {
	if err := mask.check(d.NumParticles()); err != nil {
		return math.NaN(), err
	}
	vol := d.weightedSum(d.ParticleVolume(dry), mask)
	if !(vol > 0) {
		return math.NaN(), &DegenerateInputError{Row: -1, Reason: "selected particles have zero volume"}
	}
	return d.weightedSum(d.ParticleMass(dry), mask) / vol, nil
}

// MassConcentrations returns the composition matrix for the given
// species selection and particle mask: one row per selected particle
// and one column per selected species or species group, holding mass
// concentrations [kg m-3]. The column labels are also returned.
func (d *Dataset) MassConcentrations(sel SpeciesSelection, mask Mask) (*mat.Dense, []string, error) {
	if sel == nil {
		sel = AllSpecies{}
	}
	n := d.NumParticles()
	if err := mask.check(n); err != nil {
		return nil, nil, err
	}
	cols, err := sel.columns(d.Aero)
	if err != nil {
		return nil, nil, err
	}
	nSel := mask.Count(n)
	if nSel == 0 {
		return nil, nil, &ShapeError{What: "particle selection", Got: 0, Want: -1}
	}
	labels := make([]string, len(cols))
	for j, c := range cols {
		labels[j] = c.label
	}
	o := mat.NewDense(nSel, len(cols), nil)
	row := make([]float64, len(cols))
	i := 0
	for p := 0; p < n; p++ {
		if !mask.Selected(p) {
			continue
		}
		for j, c := range cols {
			var m float64
			for _, s := range c.positions {
				if v := d.mass.Elements[s*n+p]; !math.IsNaN(v) {
					m += v
				}
			}
			row[j] = m * d.numConc[p]
		}
		o.SetRow(i, row)
		i++
	}
	return o, labels, nil
}

// MixingStateIndex calculates the diversities and mixing state index
// of the particles selected by mask, with respect to the given species
// selection. A nil selection is equivalent to AllSpecies.
// Selected particles that contain none of the selected species
// result in a *DegenerateInputError; use NonEmpty to exclude them.
func (d *Dataset) MixingStateIndex(sel SpeciesSelection, mask Mask) (Diversity, error) {
	a, _, err := d.MassConcentrations(sel, mask)
	if err != nil {
		return Diversity{}, err
	}
	return MixingState(a)
}

// NonEmpty returns a mask selecting the particles that have a positive
// mass concentration of at least one of the selected species.
func (d *Dataset) NonEmpty(sel SpeciesSelection) (Mask, error) {
	a, _, err := d.MassConcentrations(sel, nil)
	if err != nil {
		return nil, err
	}
	m := make(Mask, d.NumParticles())
	for p := range m {
		m[p] = floats.Sum(a.RawRowView(p)) > 0
	}
	return m, nil
}

// DiameterRange returns a mask selecting the particles with
// diameters [m] in the range [min, max), excluding water if dry is
// true. Use math.Inf(1) for an unbounded range.
func (d *Dataset) DiameterRange(dry bool, min, max float64) Mask {
	diam := d.ParticleDiameter(dry)
	m := make(Mask, len(diam))
	for p, v := range diam {
		m[p] = v >= min && v < max
	}
	return m
}

// LabeledArray is a set of values labeled by species name.
type LabeledArray struct {
	Names   []string
	Indices []int
	Values  []float64
	Units   string
}

// Get returns the value associated with the given name.
func (l *LabeledArray) Get(name string) (float64, bool) {
	for i, n := range l.Names {
		if n == name {
			return l.Values[i], true
		}
	}
	return math.NaN(), false
}

// GasMixingRatio returns the mixing ratios of the given gas species.
// If no names are given, all gas species are returned.
func (d *Dataset) GasMixingRatio(names ...string) (*LabeledArray, error) {
	if len(names) == 0 {
		names = d.Gas.names
	}
	idx, err := d.Gas.Indices(names...)
	if err != nil {
		return nil, err
	}
	o := &LabeledArray{
		Names:   append([]string(nil), names...),
		Indices: idx,
		Values:  make([]float64, len(names)),
		Units:   d.gasUnits,
	}
	for i, n := range names {
		p, _ := d.Gas.Position(n)
		o.Values[i] = d.gasMixingRatio[p]
	}
	return o, nil
}

// Subset returns a new dataset holding only the particles selected by
// mask, with the given aerosol species removed.
func (d *Dataset) Subset(mask Mask, drop ...string) (*Dataset, error) {
	n := d.NumParticles()
	if err := mask.check(n); err != nil {
		return nil, err
	}
	var cols []column
	var err error
	if len(drop) == 0 {
		cols, err = AllSpecies{}.columns(d.Aero)
	} else {
		cols, err = DropSpecies(drop).columns(d.Aero)
	}
	if err != nil {
		return nil, err
	}
	nSel := mask.Count(n)
	names := make([]string, len(cols))
	labels := make([]int, len(cols))
	density := make([]float64, len(cols))
	mass := sparse.ZerosDense(len(cols), nSel)
	for j, c := range cols {
		s := c.positions[0]
		names[j] = c.label
		labels[j] = d.Aero.indices[s]
		density[j] = d.density[s]
		i := 0
		for p := 0; p < n; p++ {
			if mask.Selected(p) {
				mass.Elements[j*nSel+i] = d.mass.Elements[s*n+p]
				i++
			}
		}
	}
	numConc := make([]float64, 0, nSel)
	for p, v := range d.numConc {
		if mask.Selected(p) {
			numConc = append(numConc, v)
		}
	}
	aero, err := NewSpeciesMap(d.Aero.kind, names, labels)
	if err != nil {
		return nil, err
	}
	o, err := NewDataset(aero, mass, numConc, density, d.Gas, d.gasMixingRatio, d.gasUnits)
	if err != nil {
		return nil, err
	}
	o.Env = d.Env
	return o, nil
}

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
	"sort"

	"github.com/ctessum/unit"
	"gonum.org/v1/gonum/stat"
)

// PerMeter3 is the dimension of a number concentration [m-3].
var PerMeter3 = unit.Dimensions{unit.LengthDim: -3}

// Summary holds population-level statistics for a particle population.
type Summary struct {
	Env Env

	// NumParticles is the number of computational particles included.
	NumParticles int

	NumConc       *unit.Unit // total number concentration [m-3]
	DryMassConc   *unit.Unit // total dry mass concentration [kg m-3]
	WetMassConc   *unit.Unit // total wet mass concentration [kg m-3]
	DryDensity    *unit.Unit // dry bulk density [kg m-3], NaN if there is no dry volume
	MeanDryDiam   *unit.Unit // number-weighted mean dry diameter [m]
	MedianDryDiam *unit.Unit // number-weighted median dry diameter [m]

	// Diversity is the mixing state of the included particles. Particles
	// without any of the selected species are excluded from it. It is
	// NaN when no particle contains any of the selected species.
	Diversity Diversity
}

// Summarize calculates summary statistics for the particles in d
// selected by mask, with the mixing state calculated with respect to
// the species selection sel.
func Summarize(d *Dataset, sel SpeciesSelection, mask Mask) (*Summary, error) {
	if err := mask.check(d.NumParticles()); err != nil {
		return nil, err
	}
	s := &Summary{Env: d.Env, NumParticles: mask.Count(d.NumParticles())}
	if s.NumParticles == 0 {
		return nil, &ShapeError{What: "particle selection", Got: 0, Want: -1}
	}

	n, err := d.TotalNumberConcentration(mask)
	if err != nil {
		return nil, err
	}
	s.NumConc = unit.New(n, PerMeter3)

	dry, err := d.TotalMassConcentration(true, mask)
	if err != nil {
		return nil, err
	}
	s.DryMassConc = unit.New(dry, unit.KilogramPerMeter3)

	wet, err := d.TotalMassConcentration(false, mask)
	if err != nil {
		return nil, err
	}
	s.WetMassConc = unit.New(wet, unit.KilogramPerMeter3)

	rho, err := d.BulkDensity(true, mask)
	var de *DegenerateInputError
	if errors.As(err, &de) {
		rho = math.NaN() // no dry volume
	} else if err != nil {
		return nil, err
	}
	s.DryDensity = unit.New(rho, unit.KilogramPerMeter3)

	diam, weights := selectWeighted(d.ParticleDiameter(true), d.numConc, mask)
	s.MeanDryDiam = unit.New(stat.Mean(diam, weights), unit.Meter)
	sortWeighted(diam, weights)
	s.MedianDryDiam = unit.New(stat.Quantile(0.5, stat.Empirical, diam, weights), unit.Meter)

	nonEmpty, err := d.NonEmpty(sel)
	if err != nil {
		return nil, err
	}
	divMask, err := mask.And(nonEmpty)
	if err != nil {
		return nil, err
	}
	if divMask.Count(d.NumParticles()) == 0 {
		nan := math.NaN()
		s.Diversity = Diversity{DAlpha: nan, DGamma: nan, Chi: nan}
		return s, nil
	}
	s.Diversity, err = d.MixingStateIndex(sel, divMask)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// selectWeighted returns the values and weights of the particles
// selected by mask.
func selectWeighted(x, w []float64, mask Mask) (xo, wo []float64) {
	for p := range x {
		if mask.Selected(p) {
			xo = append(xo, x[p])
			wo = append(wo, w[p])
		}
	}
	return
}

// sortWeighted sorts x in increasing order, keeping w aligned with it.
func sortWeighted(x, w []float64) {
	sort.Sort(weightedValues{x, w})
}

type weightedValues struct{ x, w []float64 }

func (v weightedValues) Len() int           { return len(v.x) }
func (v weightedValues) Less(i, j int) bool { return v.x[i] < v.x[j] }
func (v weightedValues) Swap(i, j int) {
	v.x[i], v.x[j] = v.x[j], v.x[i]
	v.w[i], v.w[j] = v.w[j], v.w[i]
}

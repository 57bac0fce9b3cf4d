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

	"gonum.org/v1/gonum/mat"
)

// Diversity holds the results of a mixing state calculation,
// following Riemer and West (2013), doi:10.5194/acp-13-11423-2013.
type Diversity struct {
	// DAlpha is the average per-particle species diversity, i.e. the
	// effective number of species in each particle.
	DAlpha float64

	// DGamma is the bulk population species diversity, i.e. the
	// effective number of species in the population as a whole.
	DGamma float64

	// Chi is the mixing state index, (DAlpha-1)/(DGamma-1), which
	// ranges from 0 (fully externally mixed) to 1 (fully internally
	// mixed). Chi is NaN when DGamma == 1, i.e. when the whole
	// population consists of a single species.
	Chi float64
}

// Defined returns whether the mixing state index is defined for
// the population, which is not the case if the population only
// contains a single species.
func (d Diversity) Defined() bool { return !math.IsNaN(d.Chi) }

// MixingState calculates the particle and population diversities
// and the mixing state index of the composition matrix a, where each
// row of a is a particle (or mode) and each column is a species
// (or group of species). The entries of a are mass concentrations and
// must not be negative. NaN entries are treated as zero.
//
// Every row must have a positive total concentration; rows with
// zero total concentration result in a *DegenerateInputError and
// should be removed by the caller beforehand.
// a is not modified.
func MixingState(a mat.Matrix) (Diversity, error) {
	nPart, nSpec := a.Dims()
	if nPart == 0 {
		return Diversity{}, &ShapeError{What: "composition matrix particle dimension", Got: 0, Want: -1}
	}
	if nSpec == 0 {
		return Diversity{}, &ShapeError{What: "composition matrix species dimension", Got: 0, Want: -1}
	}

	rowSum := make([]float64, nPart)
	colSum := make([]float64, nSpec)
	var total float64
	for i := 0; i < nPart; i++ {
		for j := 0; j < nSpec; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if v < 0 || math.IsInf(v, 0) {
				return Diversity{}, &DegenerateInputError{
					Row:    i,
					Reason: fmt.Sprintf("species %d has invalid concentration %g", j, v),
				}
			}
			rowSum[i] += v
			colSum[j] += v
			total += v
		}
	}
	if !(total > 0) {
		return Diversity{}, &DegenerateInputError{Row: -1, Reason: "population has zero total concentration"}
	}

	// Population-weighted per-particle entropy.
	frac := make([]float64, nSpec)
	var hAlpha float64
	for i := 0; i < nPart; i++ {
		if !(rowSum[i] > 0) {
			return Diversity{}, &DegenerateInputError{Row: i, Reason: "particle has zero total concentration"}
		}
		for j := range frac {
			v := a.At(i, j)
			if math.IsNaN(v) {
				v = 0
			}
			frac[j] = v / rowSum[i]
		}
		hAlpha += rowSum[i] / total * shannon(frac)
	}

	// Bulk population entropy.
	pa := make([]float64, nSpec)
	for j, v := range colSum {
		pa[j] = v / total
	}
	hGamma := shannon(pa)

	d := Diversity{
		DAlpha: math.Exp(hAlpha),
		DGamma: math.Exp(hGamma),
	}
	if hGamma == 0 {
		d.Chi = math.NaN()
	} else {
		d.Chi = (d.DAlpha - 1) / (d.DGamma - 1)
	}
	return d, nil
}

// shannon returns the Shannon entropy -Σ p ln(p) of the fractions p.
// Zero entries contribute nothing.
func shannon(p []float64) float64 {
	var h float64
	for _, v := range p {
		if v > 0 {
			h -= v * math.Log(v)
		}
	}
	return h
}

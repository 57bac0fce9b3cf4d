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
	"strings"
)

// SpeciesSelection specifies which aerosol species make up the columns
// of a composition matrix. It is implemented by AllSpecies,
// DropSpecies and GroupedSpecies.
type SpeciesSelection interface {
	fmt.Stringer

	// columns resolves the selection against a species mapping,
	// returning the species positions that are summed together
	// to form each column.
	columns(m SpeciesMap) ([]column, error)
}

// column is one column of a composition matrix.
type column struct {
	label     string
	positions []int
}

// AllSpecies selects every aerosol species as its own column.
type AllSpecies struct{}

func (AllSpecies) String() string { return "all species" }

func (AllSpecies) columns(m SpeciesMap) ([]column, error) {
	if m.Len() == 0 {
		return nil, &ShapeError{What: "species selection", Got: 0, Want: -1}
	}
	o := make([]column, m.Len())
	for i, n := range m.names {
		o[i] = column{label: n, positions: []int{i}}
	}
	return o, nil
}

// DropSpecies selects every aerosol species except the listed ones,
// each as its own column. Columns are in dataset order.
type DropSpecies []string

func (d DropSpecies) String() string { return "all species except " + strings.Join(d, ",") }

func (d DropSpecies) columns(m SpeciesMap) ([]column, error) {
	drop := make(map[int]struct{}, len(d))
	for _, n := range d {
		p, err := m.Position(n)
		if err != nil {
			return nil, err
		}
		drop[p] = struct{}{}
	}
	var o []column
	for i, n := range m.names {
		if _, ok := drop[i]; ok {
			continue
		}
		o = append(o, column{label: n, positions: []int{i}})
	}
	if len(o) == 0 {
		return nil, &ShapeError{What: "species selection", Got: 0, Want: -1}
	}
	return o, nil
}

// GroupedSpecies combines species into groups, for example
// GroupedSpecies{{"SO4", "NO3", "NH4"}, {"BC", "OC"}}. The masses of the
// species in each group are summed to form one column per group.
type GroupedSpecies [][]string

func (g GroupedSpecies) String() string {
	s := make([]string, len(g))
	for i, grp := range g {
		s[i] = "[" + strings.Join(grp, ",") + "]"
	}
	return "groups " + strings.Join(s, " ")
}

func (g GroupedSpecies) columns(m SpeciesMap) ([]column, error) {
	if len(g) == 0 {
		return nil, &ShapeError{What: "species group list", Got: 0, Want: -1}
	}
	o := make([]column, len(g))
	for i, grp := range g {
		if len(grp) == 0 {
			return nil, &ShapeError{What: fmt.Sprintf("species group %d", i), Got: 0, Want: -1}
		}
		c := column{label: strings.Join(grp, "+"), positions: make([]int, len(grp))}
		for j, n := range grp {
			p, err := m.Position(n)
			if err != nil {
				return nil, err
			}
			c.positions[j] = p
		}
		o[i] = c
	}
	return o, nil
}

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

// SpeciesMap is an immutable mapping from species names to the
// index values that label them in a dataset. It is built once when
// a dataset is loaded.
type SpeciesMap struct {
	kind    string
	names   []string
	indices []int
	lookup  map[string]int // name -> position in names
}

// NewSpeciesMap creates a mapping from a list of names and the
// parallel list of index labels. kind describes the species category
// ("aerosol" or "gas") and is used in error messages.
func NewSpeciesMap(kind string, names []string, indices []int) (SpeciesMap, error) {
	if len(names) != len(indices) {
		return SpeciesMap{}, fmt.Errorf("pmcpost: %s species: %d names but %d indices",
			kind, len(names), len(indices))
	}
	m := SpeciesMap{
		kind:    kind,
		names:   make([]string, len(names)),
		indices: make([]int, len(indices)),
		lookup:  make(map[string]int, len(names)),
	}
	copy(m.names, names)
	copy(m.indices, indices)
	for i, n := range names {
		if n == "" {
			return SpeciesMap{}, fmt.Errorf("pmcpost: %s species %d has an empty name", kind, i)
		}
		if _, ok := m.lookup[n]; ok {
			return SpeciesMap{}, fmt.Errorf("pmcpost: duplicate %s species name %q", kind, n)
		}
		m.lookup[n] = i
	}
	return m, nil
}

// ParseSpeciesMap creates a mapping from a comma-delimited list of
// names, as stored in the `names` attribute of PartMC species
// coordinate variables.
func ParseSpeciesMap(kind, names string, indices []int) (SpeciesMap, error) {
	var n []string
	if strings.TrimSpace(names) != "" {
		n = strings.Split(names, ",")
		for i, s := range n {
			n[i] = strings.TrimSpace(s)
		}
	}
	return NewSpeciesMap(kind, n, indices)
}

// Indices returns the index labels of the given species, in
// the requested order. An *UnknownSpeciesError is returned if any
// of the names is not in the mapping.
func (m SpeciesMap) Indices(names ...string) ([]int, error) {
	o := make([]int, len(names))
	for i, n := range names {
		p, ok := m.lookup[n]
		if !ok {
			return nil, &UnknownSpeciesError{Kind: m.kind, Name: n}
		}
		o[i] = m.indices[p]
	}
	return o, nil
}

// Position returns the position of the given species in the
// mapping's name list.
func (m SpeciesMap) Position(name string) (int, error) {
	p, ok := m.lookup[name]
	if !ok {
		return -1, &UnknownSpeciesError{Kind: m.kind, Name: name}
	}
	return p, nil
}

// Has returns whether name is in the mapping.
func (m SpeciesMap) Has(name string) bool {
	_, ok := m.lookup[name]
	return ok
}

// Names returns a copy of the species names in dataset order.
func (m SpeciesMap) Names() []string {
	o := make([]string, len(m.names))
	copy(o, m.names)
	return o
}

// Labels returns a copy of the index labels in dataset order.
func (m SpeciesMap) Labels() []int {
	o := make([]int, len(m.indices))
	copy(o, m.indices)
	return o
}

// Len returns the number of species.
func (m SpeciesMap) Len() int { return len(m.names) }

// String returns the comma-delimited species names.
func (m SpeciesMap) String() string { return strings.Join(m.names, ",") }

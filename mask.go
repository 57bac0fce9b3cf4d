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

// Mask selects particles. A nil Mask selects every particle;
// otherwise it must have one entry per particle.
type Mask []bool

// check returns an error if the mask cannot be applied to n particles.
func (m Mask) check(n int) error {
	if m != nil && len(m) != n {
		return &ShapeError{What: "particle mask", Got: len(m), Want: n}
	}
	return nil
}

// Selected returns whether particle i is selected.
func (m Mask) Selected(i int) bool { return m == nil || m[i] }

// Count returns the number of selected particles out of n.
func (m Mask) Count(n int) int {
	if m == nil {
		return n
	}
	var c int
	for _, v := range m {
		if v {
			c++
		}
	}
	return c
}

// And returns the element-wise intersection of m and o. A nil mask is
// treated as selecting everything; otherwise the lengths must match.
func (m Mask) And(o Mask) (Mask, error) {
	switch {
	case m == nil:
		return o, nil
	case o == nil:
		return m, nil
	case len(m) != len(o):
		return nil, &ShapeError{What: "particle mask", Got: len(o), Want: len(m)}
	}
	r := make(Mask, len(m))
	for i := range r {
		r[i] = m[i] && o[i]
	}
	return r, nil
}

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

import "fmt"

// UnknownSpeciesError is returned when a requested species name is
// not present in a dataset's name-to-index mapping.
type UnknownSpeciesError struct {
	// Kind is the species category, e.g. "aerosol" or "gas".
	Kind string
	Name string
}

func (e *UnknownSpeciesError) Error() string {
	return fmt.Sprintf("pmcpost: unknown %s species %q", e.Kind, e.Name)
}

// DegenerateInputError is returned when a composition matrix violates
// the preconditions of the mixing state calculation, for example
// when a particle has zero total mass.
type DegenerateInputError struct {
	// Row is the offending row of the composition matrix, or -1
	// if the problem is not specific to a row.
	Row    int
	Reason string
}

func (e *DegenerateInputError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("pmcpost: degenerate input: %s", e.Reason)
	}
	return fmt.Sprintf("pmcpost: degenerate input in row %d: %s", e.Row, e.Reason)
}

// ShapeError is returned when a selection or mask does not fit the
// dimensions of the data it is applied to.
type ShapeError struct {
	What      string
	Got, Want int
}

func (e *ShapeError) Error() string {
	if e.Want < 0 {
		return fmt.Sprintf("pmcpost: %s has invalid length %d", e.What, e.Got)
	}
	return fmt.Sprintf("pmcpost: %s has length %d but should be %d", e.What, e.Got, e.Want)
}

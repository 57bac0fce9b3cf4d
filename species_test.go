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
	"reflect"
	"testing"
)

func TestSpeciesMap(t *testing.T) {
	m, err := NewSpeciesMap("aerosol", []string{"A", "B", "C"}, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	t.Run("indices", func(t *testing.T) {
		idx, err := m.Indices("A", "C")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(idx, []int{0, 2}) {
			t.Errorf("%v != %v", idx, []int{0, 2})
		}
	})
	t.Run("requested_order", func(t *testing.T) {
		idx, err := m.Indices("C", "A", "C")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(idx, []int{2, 0, 2}) {
			t.Errorf("%v != %v", idx, []int{2, 0, 2})
		}
	})
	t.Run("empty", func(t *testing.T) {
		idx, err := m.Indices()
		if err != nil {
			t.Fatal(err)
		}
		if len(idx) != 0 {
			t.Errorf("want no indices, have %v", idx)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := m.Indices("A", "Z")
		var ue *UnknownSpeciesError
		if !errors.As(err, &ue) {
			t.Fatalf("want UnknownSpeciesError, have %v", err)
		}
		if ue.Name != "Z" || ue.Kind != "aerosol" {
			t.Errorf("error fields: %+v", ue)
		}
		if m.Has("Z") {
			t.Error("Z should not be in the mapping")
		}
	})
	t.Run("accessors", func(t *testing.T) {
		if m.Len() != 3 {
			t.Errorf("length %d != 3", m.Len())
		}
		if m.String() != "A,B,C" {
			t.Errorf("%s != A,B,C", m.String())
		}
		p, err := m.Position("B")
		if err != nil {
			t.Fatal(err)
		}
		if p != 1 {
			t.Errorf("position %d != 1", p)
		}
		names := m.Names()
		names[0] = "X"
		if !m.Has("A") || m.Names()[0] != "A" {
			t.Error("Names should return a copy")
		}
	})
}

func TestParseSpeciesMap(t *testing.T) {
	m, err := ParseSpeciesMap("gas", "H2SO4, HNO3,NH3 ", []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Names(), []string{"H2SO4", "HNO3", "NH3"}) {
		t.Errorf("names: %v", m.Names())
	}
	idx, err := m.Indices("NH3")
	if err != nil {
		t.Fatal(err)
	}
	if idx[0] != 3 {
		t.Errorf("label %d != 3", idx[0])
	}

	if _, err := ParseSpeciesMap("gas", "A,B", []int{1}); err == nil {
		t.Error("mismatched lengths should cause an error")
	}
	if _, err := ParseSpeciesMap("gas", "A,B,A", []int{1, 2, 3}); err == nil {
		t.Error("duplicate names should cause an error")
	}
	if _, err := ParseSpeciesMap("gas", "A,,B", []int{1, 2, 3}); err == nil {
		t.Error("empty names should cause an error")
	}
	empty, err := ParseSpeciesMap("gas", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Len() != 0 {
		t.Errorf("length %d != 0", empty.Len())
	}
}

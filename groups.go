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
	"os"

	"github.com/BurntSushi/toml"
)

// ReadGroups reads species group definitions in TOML format, e.g.:
//
//	Groups = [["SO4", "NO3", "NH4"], ["BC", "OC"], ["H2O"]]
func ReadGroups(r io.Reader) (GroupedSpecies, error) {
	var c struct {
		Groups [][]string
	}
	if _, err := toml.DecodeReader(r, &c); err != nil {
		return nil, fmt.Errorf("pmcpost: reading species groups: %v", err)
	}
	if len(c.Groups) == 0 {
		return nil, &ShapeError{What: "species group list", Got: 0, Want: -1}
	}
	return GroupedSpecies(c.Groups), nil
}

// ReadGroupsFile reads species group definitions from the TOML file at path.
func ReadGroupsFile(path string) (GroupedSpecies, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("pmcpost: opening species group file: %v", err)
	}
	defer f.Close()
	return ReadGroups(f)
}
